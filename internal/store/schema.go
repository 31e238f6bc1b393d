package store

const schema = `
CREATE TABLE IF NOT EXISTS cards (
    id TEXT PRIMARY KEY,
    document_id TEXT NOT NULL,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    hint TEXT NOT NULL DEFAULT '',
    topic TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_cards_document ON cards(document_id);

CREATE TABLE IF NOT EXISTS progress (
    learner_id TEXT NOT NULL,
    card_id TEXT NOT NULL,
    mastered INTEGER NOT NULL DEFAULT 0,
    due_at DATETIME NOT NULL,
    ease_factor REAL NOT NULL,
    interval_days INTEGER NOT NULL,
    review_count INTEGER NOT NULL DEFAULT 0,
    last_reviewed_at DATETIME NOT NULL,

    PRIMARY KEY (learner_id, card_id)
);

CREATE TABLE IF NOT EXISTS reviews (
    id TEXT PRIMARY KEY,
    learner_id TEXT NOT NULL,
    card_id TEXT NOT NULL,
    correct INTEGER NOT NULL,
    confidence INTEGER NOT NULL,
    response_time_ms INTEGER NOT NULL DEFAULT 0,
    reviewed_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reviews_learner_card ON reviews(learner_id, card_id, reviewed_at);
CREATE INDEX IF NOT EXISTS idx_reviews_learner_time ON reviews(learner_id, reviewed_at);

CREATE TABLE IF NOT EXISTS study_sessions (
    id TEXT PRIMARY KEY,
    learner_id TEXT NOT NULL,
    document_id TEXT NOT NULL,
    hour_bucket TEXT NOT NULL,
    started_at DATETIME NOT NULL,
    review_count INTEGER NOT NULL DEFAULT 0,
    correct_count INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER NOT NULL DEFAULT 0,

    UNIQUE (learner_id, document_id, hour_bucket)
);

CREATE TABLE IF NOT EXISTS gen_cache (
    key TEXT PRIMARY KEY,
    response TEXT NOT NULL,
    model TEXT NOT NULL,
    input_tokens INTEGER NOT NULL DEFAULT 0,
    output_tokens INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_gen_cache_created ON gen_cache(created_at);

CREATE TABLE IF NOT EXISTS gen_usage (
    id TEXT PRIMARY KEY,
    model TEXT NOT NULL,
    purpose TEXT NOT NULL DEFAULT '',
    input_tokens INTEGER NOT NULL DEFAULT 0,
    output_tokens INTEGER NOT NULL DEFAULT 0,
    latency_ms INTEGER NOT NULL DEFAULT 0,
    cost_usd REAL NOT NULL DEFAULT 0,
    cached INTEGER NOT NULL DEFAULT 0,
    success INTEGER NOT NULL DEFAULT 1,
    error_message TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);
`

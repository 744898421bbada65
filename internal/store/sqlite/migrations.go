package sqlite

// schema contains the database schema DDL.
const schema = `
-- Schedule record: one row per persisted field
CREATE TABLE IF NOT EXISTS schedule (
    key TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);
`

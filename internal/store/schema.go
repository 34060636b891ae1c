package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id        TEXT PRIMARY KEY,
    ran_at        TEXT NOT NULL,
    customers     INTEGER NOT NULL,
    transactions  INTEGER NOT NULL,
    summary_rows  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS monthly_summary (
    customer_id       INTEGER NOT NULL,
    year_month        TEXT NOT NULL,
    transaction_count INTEGER NOT NULL,
    total_amount      TEXT NOT NULL,
    average_amount    TEXT NOT NULL,
    PRIMARY KEY (customer_id, year_month)
);
`

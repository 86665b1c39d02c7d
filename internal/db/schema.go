package db

// schema is the full database schema. Every statement is idempotent.
const schema = `
CREATE EXTENSION IF NOT EXISTS btree_gist;

CREATE TABLE IF NOT EXISTS users (
    id            SERIAL PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'partner', 'admin')),
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email));

CREATE TABLE IF NOT EXISTS storage_partners (
    id              SERIAL PRIMARY KEY,
    user_id         INTEGER NOT NULL REFERENCES users(id),
    name            TEXT NOT NULL,
    description     TEXT,
    location        TEXT NOT NULL,
    address         TEXT NOT NULL,
    contact_email   TEXT NOT NULL,
    contact_phone   TEXT,
    commission_rate DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (commission_rate >= 0 AND commission_rate <= 100),
    max_capacity    INTEGER CHECK (max_capacity >= 0),
    is_verified     BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_storage_partners_user ON storage_partners (user_id);

CREATE TABLE IF NOT EXISTS surfboards (
    id                  SERIAL PRIMARY KEY,
    owner_id            INTEGER NOT NULL REFERENCES users(id),
    title               TEXT NOT NULL,
    description         TEXT NOT NULL DEFAULT '',
    condition           TEXT NOT NULL CHECK (condition IN ('New', 'Excellent', 'Good', 'Fair', 'Poor')),
    sale_price_cents    BIGINT CHECK (sale_price_cents >= 0),
    price_per_day_cents BIGINT CHECK (price_per_day_cents >= 0),
    image_url           TEXT,
    dimensions          TEXT,
    location            TEXT,
    for_rent            BOOLEAN NOT NULL DEFAULT FALSE,
    for_sale            BOOLEAN NOT NULL DEFAULT FALSE,
    is_stored           BOOLEAN NOT NULL DEFAULT FALSE,
    storage_partner_id  INTEGER REFERENCES storage_partners(id),
    storage_start_date  TIMESTAMPTZ,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    deleted_at          TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_surfboards_owner ON surfboards (owner_id) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS rentals (
    id                 SERIAL PRIMARY KEY,
    surfboard_id       INTEGER NOT NULL REFERENCES surfboards(id),
    renter_id          INTEGER NOT NULL REFERENCES users(id),
    owner_id           INTEGER NOT NULL REFERENCES users(id),
    start_date         TIMESTAMPTZ NOT NULL,
    end_date           TIMESTAMPTZ NOT NULL,
    total_amount_cents BIGINT NOT NULL CHECK (total_amount_cents >= 0),
    status             TEXT NOT NULL DEFAULT 'pending'
                       CHECK (status IN ('pending', 'approved', 'rejected', 'cancelled', 'active', 'completed')),
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (renter_id <> owner_id),
    CHECK (end_date > start_date)
);

CREATE INDEX IF NOT EXISTS idx_rentals_owner ON rentals (owner_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_rentals_renter ON rentals (renter_id, created_at DESC);

CREATE TABLE IF NOT EXISTS storage_agreements (
    id           SERIAL PRIMARY KEY,
    surfboard_id INTEGER NOT NULL REFERENCES surfboards(id),
    partner_id   INTEGER NOT NULL REFERENCES storage_partners(id),
    owner_id     INTEGER NOT NULL REFERENCES users(id),
    start_date   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    status       TEXT NOT NULL DEFAULT 'pending'
                 CHECK (status IN ('pending', 'active', 'accepted', 'rejected', 'released')),
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_storage_agreements_partner ON storage_agreements (partner_id, status);

CREATE TABLE IF NOT EXISTS transactions (
    id               SERIAL PRIMARY KEY,
    rental_id        INTEGER NOT NULL REFERENCES rentals(id),
    amount_cents     BIGINT NOT NULL,
    status           TEXT NOT NULL DEFAULT 'pending',
    transaction_type TEXT NOT NULL DEFAULT 'rental',
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

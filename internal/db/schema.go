package db

// SchemaSQL is the complete schema for fresh intake installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// it via GetSchemaSQL(); repository code that references a column missing
// here fails immediately with "no such column" at test time.
//
// There is no cross-table foreign key from applications to positions on
// purpose: deleting a position must not cascade to existing applications,
// and a dangling position_id is resolved at read time.
const SchemaSQL = `
-- Positions (staff-defined application opportunities)
CREATE TABLE IF NOT EXISTS positions (
	position_id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	roles_given TEXT NOT NULL DEFAULT '',
	questions TEXT NOT NULL DEFAULT '',
	acceptance_message TEXT NOT NULL DEFAULT '',
	rejection_message TEXT NOT NULL DEFAULT '',
	open BOOLEAN NOT NULL DEFAULT 1
);

-- Applications (one row per attempt; answers stored as a JSON array)
CREATE TABLE IF NOT EXISTS applications (
	application_id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	position_id INTEGER NOT NULL,
	answers TEXT NOT NULL DEFAULT '[]',
	status TEXT NOT NULL CHECK(status IN ('in_progress', 'pending', 'submitted', 'under_review', 'accepted', 'rejected', 'withdrawn', 'flagged', 'on_hold')) DEFAULT 'pending',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	submitted_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_applications_user_status ON applications(user_id, status);

-- Review channel mapping (one row per community)
CREATE TABLE IF NOT EXISTS review_channels (
	community_id TEXT PRIMARY KEY,
	channel_id TEXT NOT NULL
);

-- User flags (soft escalation; empty community_id means global)
CREATE TABLE IF NOT EXISTS user_flags (
	user_id TEXT PRIMARY KEY,
	flagged_by TEXT NOT NULL DEFAULT '',
	reason TEXT NOT NULL DEFAULT '',
	flagged_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	community_id TEXT NOT NULL DEFAULT ''
);

-- User blacklist (hard block on starting intakes)
CREATE TABLE IF NOT EXISTS user_blacklist (
	user_id TEXT PRIMARY KEY,
	blacklisted_by TEXT NOT NULL DEFAULT '',
	reason TEXT NOT NULL DEFAULT '',
	blacklisted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// GetSchemaSQL returns the authoritative schema for tests and setup.
func GetSchemaSQL() string {
	return SchemaSQL
}

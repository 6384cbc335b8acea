package sqlite

const createSitesTable = `
CREATE TABLE IF NOT EXISTS sites (
	id INTEGER PRIMARY KEY,
	base_url TEXT NOT NULL
);`

const createPostsTable = `
CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY,
	site_id INTEGER NOT NULL,
	slug TEXT NOT NULL,
	type TEXT NOT NULL DEFAULT 'post',
	body TEXT NOT NULL DEFAULT ''
);`

const createPostMetaTable = `
CREATE TABLE IF NOT EXISTS postmeta (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	site_id INTEGER NOT NULL,
	post_id INTEGER NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL DEFAULT ''
);`

package store

// schemaSQL is the DDL for the three logical tables: the FTS4 full-text
// index ("mandb"), its filesystem-identity metadata ("mandb_meta"), and
// its cross-reference aliases ("mandb_links"). Column order matches
// original_source/apropos.c's col_weights[] ordering exactly (section
// first, uweighted, then the eleven section buffers).
const schemaSQL = `
CREATE VIRTUAL TABLE IF NOT EXISTS mandb USING fts4(
    section,
    name,
    name_desc,
    description,
    library,
    synopsis,
    return_values,
    environment,
    files,
    exit_status,
    diagnostics,
    errors,
    tokenize=porter
);

CREATE TABLE IF NOT EXISTS mandb_meta (
    id INTEGER PRIMARY KEY,
    device INTEGER NOT NULL,
    inode INTEGER NOT NULL,
    mtime INTEGER NOT NULL,
    path TEXT NOT NULL UNIQUE,
    content_hash TEXT NOT NULL,
    doc_id INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mandb_meta_hash ON mandb_meta(content_hash);
CREATE INDEX IF NOT EXISTS idx_mandb_meta_device_inode ON mandb_meta(device, inode);

CREATE TABLE IF NOT EXISTS mandb_links (
    id INTEGER PRIMARY KEY,
    link_name TEXT NOT NULL,
    target_name TEXT NOT NULL,
    section TEXT NOT NULL,
    machine TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_mandb_links_name ON mandb_links(link_name);
`

// Package sqlite implements the SQLite-backed project store for lightbox.
// It is the production implementation of types.Store: one database file per
// project directory, entries identified by UUID v7, metadata stored as typed
// scalars, annotations as opaque geometry rows.
package sqlite

// Schema DDL for all tables.
const (
	createProject = `CREATE TABLE project (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    uri TEXT NOT NULL,
    previous_uri TEXT,
    name TEXT NOT NULL,
    version TEXT NOT NULL,
    mask_image_names INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    modified_at TEXT NOT NULL
);`

	createEntries = `CREATE TABLE entries (
    entry_id TEXT PRIMARY KEY,
    uri TEXT NOT NULL UNIQUE,
    format TEXT NOT NULL,
    name TEXT NOT NULL,
    original_name TEXT,
    description TEXT,
    thumbnail BLOB,
    created_at TEXT NOT NULL
);`

	createMetadata = `CREATE TABLE metadata (
    entry_id TEXT NOT NULL,
    key TEXT NOT NULL,
    value_kind TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (entry_id, key)
);`

	createAnnotations = `CREATE TABLE annotations (
    object_id TEXT PRIMARY KEY,
    entry_id TEXT NOT NULL,
    class_name TEXT,
    roi TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createPathClasses = `CREATE TABLE path_classes (
    ordinal INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    color TEXT
);`
)

// schemaDDL lists the statements executed when a new project is created.
var schemaDDL = []string{
	createProject,
	createEntries,
	createMetadata,
	createAnnotations,
	createPathClasses,
}

package database

// migrations is an ordered list of SQL migration groups. Each entry is a
// slice of SQL statements executed together in a single transaction. The
// version number is the 1-based index into this slice.
var migrations = [][]string{
	// Migration 1: objects, properties, associations, id counters.
	{
		// seq is the process-wide insertion counter; listings observe
		// creation order through it. Object ids are only unique per
		// resource type.
		`CREATE TABLE objects (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			resource_type TEXT NOT NULL,
			id INTEGER NOT NULL,
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (resource_type, id)
		)`,
		`CREATE INDEX idx_objects_type ON objects(resource_type, archived)`,

		`CREATE TABLE property_values (
			resource_type TEXT NOT NULL,
			object_id INTEGER NOT NULL,
			property_name TEXT NOT NULL,
			value TEXT,
			PRIMARY KEY (resource_type, object_id, property_name)
		)`,
		`CREATE INDEX idx_property_values_value ON property_values(property_name, value)`,

		// Association records are append-only; repeated link calls produce
		// repeated rows, and seq preserves link order per source object.
		`CREATE TABLE associations (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			from_type TEXT NOT NULL,
			from_id INTEGER NOT NULL,
			to_type TEXT NOT NULL,
			to_id INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX idx_associations_from ON associations(from_type, from_id, to_type)`,

		`CREATE TABLE association_specs (
			association_seq INTEGER NOT NULL,
			position INTEGER NOT NULL,
			category TEXT NOT NULL,
			type_id INTEGER NOT NULL,
			PRIMARY KEY (association_seq, position),
			FOREIGN KEY (association_seq) REFERENCES associations(seq)
		)`,

		`CREATE TABLE id_counters (
			resource_type TEXT PRIMARY KEY,
			next_id INTEGER NOT NULL
		)`,
	},
}

package output

// SchemaVersion is stamped on every NDJSON record.
// Bump it when a record changes incompatibly so scripts parsing
// `iossim --format ndjson` can tell.
const SchemaVersion = 1

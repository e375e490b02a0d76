// Package history records completed calculations and serves the most recent
// ones back.
//
// A Recorder sits in front of a Repository (SQLite in production) and any
// number of Publishers (MQTT, InfluxDB). Recording is best-effort: the HTTP
// layer logs and drops Record errors, and publisher failures are only logged.
// Reading is not: Recent reports ErrStorageUnavailable so /history can
// answer 500.
//
// Records are append-only. There is no update or delete path.
package history

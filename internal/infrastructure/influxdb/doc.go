// Package influxdb writes calc-core operations to InfluxDB as time series.
//
// Each recorded operation becomes one point in the "operations" measurement,
// tagged by operation name, with an operand_count field and a result field
// (omitted when the result is NaN or infinite).
//
// InfluxDB is optional. Connect returns ErrDisabled when influxdb.enabled is
// false; the caller then simply runs without this publisher.
//
// Usage:
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	recorder := history.NewRecorder(repo, history.WithPublisher("influxdb", client))
//
// Writes are batched according to batch_size and flush_interval.
package influxdb

// Package config handles loading and validating calc-core configuration.
//
// This package manages:
//   - Loading configuration from an optional YAML file
//   - Overriding with environment variables (CALCCORE_*)
//   - Validation of required fields
//   - Default value handling
//
// The service runs with no config file at all; the one setting most
// deployments change is the history store location, which
// CALCCORE_DATABASE_PATH overrides.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Database.Path)
package config

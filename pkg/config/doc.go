// Package config loads typed configuration structs from the process
// environment.
//
// Parsing is delegated to github.com/caarlos0/env/v11, so fields are described
// with `env` and `envDefault` tags. A `.env` file in the working directory is
// loaded once through github.com/joho/godotenv before the first parse; values
// already present in the environment win.
//
// Each configuration type is parsed at most once per process and then served
// from an in-memory cache:
//
//	var cfg csrf.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Tests that mutate the environment call Reset between cases.
package config

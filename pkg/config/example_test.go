package config_test

import (
	"fmt"

	"github.com/wonny/rugscan/pkg/config"
)

// Scan history is only persisted when a database URL is configured
func ExampleDatabaseConfig_Enabled() {
	fmt.Println(config.DatabaseConfig{}.Enabled())
	fmt.Println(config.DatabaseConfig{URL: "postgres://localhost:5432/rugscan"}.Enabled())
	// Output:
	// false
	// true
}

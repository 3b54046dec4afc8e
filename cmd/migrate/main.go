// Package main applies the heroes database schema.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/viper"

	"github.com/Gzeu/cosmic-legends-server/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	command := flag.String("command", "up", "migration command: up, down, or status")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
	sourcePath := flag.String("source", "file://migrations", "migration source URL")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile(*configPath)
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("reading config: %v", err)
	}

	var dbCfg config.DatabaseConfig
	if err := v.Sub("database").Unmarshal(&dbCfg); err != nil {
		log.Fatalf("parsing database config: %v", err)
	}

	m, err := migrate.New(*sourcePath, dbCfg.DSN())
	if err != nil {
		log.Fatalf("creating migrator: %v", err)
	}
	defer m.Close()

	start := time.Now()
	switch *command {
	case "status":
		version, dirty, err := m.Version()
		if err == migrate.ErrNilVersion {
			fmt.Fprintln(os.Stdout, "no migrations applied")
			return
		}
		if err != nil {
			log.Fatalf("reading version: %v", err)
		}
		fmt.Fprintf(os.Stdout, "version=%d dirty=%v\n", version, dirty)
		return
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	default:
		log.Fatalf("invalid command %q: must be up, down, or status", *command)
	}

	if err == migrate.ErrNoChange {
		fmt.Fprintf(os.Stdout, "schema already current [%s]\n", time.Since(start))
		return
	}
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	version, dirty, _ := m.Version()
	fmt.Fprintf(os.Stdout, "migrated %s to version=%d dirty=%v [%s]\n",
		*command, version, dirty, time.Since(start))
}

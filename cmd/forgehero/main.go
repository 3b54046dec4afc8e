// Package main generates hero cards from the command line and prints
// them as JSON, for content tuning without a running server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Gzeu/cosmic-legends-server/internal/game/dice"
	"github.com/Gzeu/cosmic-legends-server/internal/game/herogen"
	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/clock"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/idgen"
)

func main() {
	class := flag.String("class", "", "hero class (Warrior, Mage, Ranger, Guardian); empty rolls one")
	element := flag.String("element", "", "hero element; empty rolls one")
	rarity := flag.String("rarity", "", "rarity (common, rare, epic, legendary); empty rolls one")
	level := flag.Int("level", 0, "hero level 1-10; 0 rolls one")
	theme := flag.String("theme", "", "generation theme")
	count := flag.Int("count", 1, "number of heroes to generate")
	libraryPath := flag.String("library", "", "path to a YAML content library; empty uses built-ins")
	flag.Parse()

	lib := herogen.DefaultLibrary()
	if *libraryPath != "" {
		var err error
		lib, err = herogen.LoadLibrary(*libraryPath)
		if err != nil {
			log.Fatalf("loading content library: %v", err)
		}
	}

	gen := herogen.New(dice.NewCryptoSource(), idgen.NewUUID("hero"), clock.New(), lib, nil)

	req := herogen.Request{
		Theme:   *theme,
		Class:   tables.DisplayClass(*class),
		Element: *element,
		Rarity:  tables.Rarity(*rarity),
		Level:   *level,
	}

	ctx := context.Background()
	heroes, err := gen.GenerateBatch(ctx, *count, req)
	if err != nil {
		log.Fatalf("generating heroes: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, h := range heroes {
		if err := enc.Encode(h); err != nil {
			log.Fatalf("encoding hero: %v", err)
		}
	}
	if *count > 1 {
		fmt.Fprintf(os.Stderr, "generated %d heroes\n", len(heroes))
	}
}

package main

import (
	"fmt"

	"github.com/aeveltstra/lammpster/constants"
	"github.com/aeveltstra/lammpster/internal/common"
	"github.com/aeveltstra/lammpster/internal/entity"
	"github.com/aeveltstra/lammpster/internal/render"
	"github.com/aeveltstra/lammpster/internal/store"
)

// runSelfChecks exercises the live configuration and the opened data store
// the way the --unit-test switch always has: quick confidence checks an
// operator can run after editing the configuration file.
func runSelfChecks(cfg *common.Config, db store.Database, grid *store.Grid) bool {
	checks := []struct {
		name string
		run  func() bool
	}{
		{"can_read_store_names", func() bool {
			names, err := db.StoreNames()
			return err == nil && len(names) > 0
		}},
		{"store_has_rows", func() bool {
			return grid.RowCount() > 0
		}},
		{"can_read_profile_mapping", func() bool {
			mapping := cfg.Section("profile_map")
			return mapping != nil && mapping[constants.ProfileKeyCaseID] != ""
		}},
		{"mapping_matches_column_names", func() bool {
			headerRow := cfg.EntryInt("sheet", "page_column_names_row", 1)
			index := grid.HeaderIndex(headerRow)
			if index == nil {
				return false
			}
			for _, source := range entity.NewFieldMapping(cfg.Section("profile_map")).SourceFields() {
				if _, ok := index[source]; !ok {
					fmt.Printf("  mapped field %q is not a column name\n", source)
					return false
				}
			}
			return true
		}},
		{"can_apply_profile_to_template", func() bool {
			p := entity.NewProfile()
			for k, v := range map[string]string{"one": "Einz", "two": "Zwo", "three": "Drei"} {
				value := v
				p.Set(k, &value)
			}
			out, err := render.ApplyProfileToTemplate(p, "self-check", "The road goes $one, $two, $three.")
			return err == nil && out == "The road goes Einz, Zwo, Drei."
		}},
	}

	failed := 0
	for _, check := range checks {
		if !check.run() {
			failed++
			fmt.Printf("Failed check '%s'.\n", check.name)
		}
	}
	if failed == 0 {
		fmt.Printf("Success! All %d checks passed.\n", len(checks))
		return true
	}
	fmt.Printf("%d out of %d checks failed.\n", failed, len(checks))
	return false
}

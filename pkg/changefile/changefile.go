// Package changefile decodes YAML or JSON change files into schema nodes.
//
// A change file lists schema changes in the order they should be rendered:
//
//	changes:
//	  - create_table:
//	      name: bookings
//	      unlogged: true
//	      columns:
//	        - {name: id, type: primary_key}
//	        - {name: room_id, type: bigint, "null": false}
//	        - {name: during, type: tstzrange, "null": false}
//	      exclusion_constraints:
//	        - {name: no_overlap, using: gist, expression: "room_id WITH =, during WITH &&"}
//	  - alter_table:
//	      name: bookings
//	      changes:
//	        - add_column: {name: note, type: text, collation: C}
//	        - add_foreign_key: {to_table: rooms, columns: [room_id], deferrable: deferred, validate: false}
//	      validate_constraints: [fk_bookings_room]
//	  - create_index:
//	      table: bookings
//	      columns: [{name: room_id}]
//	      concurrently: true
//
// Each entry holds exactly one of create_table, alter_table or create_index,
// and each ALTER TABLE change exactly one action. Unknown keys are rejected.
// The null key must be quoted in YAML, where a bare null is the null value.
package changefile

import (
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/pthm/pgddl/pkg/schema"
)

// ErrInvalidChangeFile is returned when a change file cannot be decoded or
// describes an impossible change.
var ErrInvalidChangeFile = errors.New("pgddl/changefile: invalid change file")

// File is a decoded change file.
type File struct {
	Changes []schema.Node
}

// Load reads and decodes the change file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading change file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a YAML or JSON change file. JSON is valid YAML, so both
// formats share one decoder.
func Parse(data []byte) (*File, error) {
	var doc document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidChangeFile, err)
	}

	f := &File{Changes: make([]schema.Node, 0, len(doc.Changes))}
	for i, entry := range doc.Changes {
		n, err := entry.node()
		if err != nil {
			return nil, fmt.Errorf("%w: changes[%d]: %w", ErrInvalidChangeFile, i, err)
		}
		f.Changes = append(f.Changes, n)
	}
	return f, nil
}

func (e changeEntry) node() (schema.Node, error) {
	set := 0
	for _, present := range []bool{e.CreateTable != nil, e.AlterTable != nil, e.CreateIndex != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, errors.New("expected exactly one of create_table, alter_table, create_index")
	}

	switch {
	case e.CreateTable != nil:
		return e.CreateTable.node()
	case e.AlterTable != nil:
		return e.AlterTable.node()
	default:
		return e.CreateIndex.node()
	}
}

package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/iexpense/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var flagRemoveIDs []string

var rmCmd = &cobra.Command{
	Use:     "rm [offset...]",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove expenses by list offset or ID",
	Long: "Remove expenses. Offsets refer to the # column of `iexpense list`, " +
		"including any --type filter, so `rm -t Business 0 2` removes the first " +
		"and third Business expenses.",
	RunE: runRemove,
}

func init() {
	rmCmd.Flags().StringSliceVar(&flagRemoveIDs, "id", nil, "Expense ID or unique ID prefix (repeatable)")
	rootCmd.AddCommand(rmCmd)
}

func runRemove(_ *cobra.Command, args []string) error {
	if len(args) == 0 && len(flagRemoveIDs) == 0 {
		return errors.New("nothing to remove: pass offsets or --id")
	}

	offsets := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("invalid offset %q", a)
		}
		offsets = append(offsets, n)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ids, err := resolveIDs(s.store.Items(), flagRemoveIDs)
	if err != nil {
		return err
	}

	// Resolve offsets to IDs against the current view before removing anything.
	view := s.store.Filtered(flagType)
	for _, off := range offsets {
		if off < 0 || off >= len(view) {
			return fmt.Errorf("offset %d out of range (0-%d)", off, len(view)-1)
		}
		ids = append(ids, view[off].ID)
	}

	removed := s.store.Remove(ids...)
	s.warnIfUnsaved()
	info("  Removed %d expense(s), %d left\n", removed, s.store.Len())
	return nil
}

// resolveIDs matches each ref against full IDs or unique ID prefixes.
func resolveIDs(items []model.Expense, refs []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		ref = strings.ToLower(strings.TrimSpace(ref))
		if id, err := uuid.Parse(ref); err == nil {
			ids = append(ids, id)
			continue
		}

		var match []uuid.UUID
		for _, e := range items {
			if strings.HasPrefix(e.ID.String(), ref) {
				match = append(match, e.ID)
			}
		}
		switch len(match) {
		case 0:
			return nil, fmt.Errorf("no expense with ID %q", ref)
		case 1:
			ids = append(ids, match[0])
		default:
			return nil, fmt.Errorf("ID prefix %q is ambiguous (%d matches)", ref, len(match))
		}
	}
	return ids, nil
}

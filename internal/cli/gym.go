// gym.go implements the groups and history commands for scripted use.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liftlog-dev/liftlog/internal/apperr"
)

var groupsGroup string

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List muscle groups, or the exercises of one group",
	RunE:  runGroups,
}

func runGroups(cmd *cobra.Command, args []string) error {
	appCtx, err := newAppContext()
	if err != nil {
		return err
	}
	defer appCtx.Close()

	if groupsGroup != "" {
		exercises, err := appCtx.service.ExercisesByGroup(cmd.Context(), groupsGroup)
		if err != nil {
			return fmt.Errorf("%s", apperr.Display(err, "Could not load the exercises."))
		}
		for _, exercise := range exercises {
			fmt.Printf("  %-6s  %s\n", exercise.ID, exercise.String())
		}
		return nil
	}

	groups, err := appCtx.service.Groups(cmd.Context())
	if err != nil {
		return fmt.Errorf("%s", apperr.Display(err, "Could not load the muscle groups."))
	}
	for _, group := range groups {
		fmt.Println(group)
	}
	return nil
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your exercise history grouped by day",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	appCtx, err := newAppContext()
	if err != nil {
		return err
	}
	defer appCtx.Close()

	days, err := appCtx.service.History(cmd.Context())
	if err != nil {
		return fmt.Errorf("%s", apperr.Display(err, "Could not load the history."))
	}

	if len(days) == 0 {
		fmt.Println("No exercises registered yet.")
		return nil
	}

	for _, day := range days {
		fmt.Println(day.Title)
		for _, entry := range day.Entries {
			fmt.Printf("  %s  %-24s  %s\n", entry.Hour, entry.Name, entry.Group)
		}
		fmt.Println()
	}
	return nil
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the local event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		defer appCtx.Close()

		events, err := appCtx.logger.ReadAll()
		if err != nil {
			return fmt.Errorf("reading event log: %w", err)
		}

		for _, event := range events {
			line := fmt.Sprintf("%s  %-20s", event.Time.Format("2006-01-02 15:04:05"), event.Event)
			if event.Email != "" {
				line += "  " + event.Email
			}
			if event.ExerciseID != "" {
				line += "  exercise=" + event.ExerciseID
			}
			if event.Error != "" {
				line += "  error=" + event.Error
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	groupsCmd.Flags().StringVar(&groupsGroup, "group", "", "List exercises for this muscle group instead")
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quadrant/core/internal/client/api"
	"github.com/quadrant/core/internal/domain/entities"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your todos, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := connect(cmd)
			if err != nil {
				return err
			}

			snap, err := sess.settled(func(ctx context.Context) {
				sess.dispatcher.Fetch(ctx)
			})
			if err != nil {
				return err
			}

			renderList(cmd.OutOrStdout(), snap.Todos)
			return nil
		},
	}
}

func newMatrixCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix",
		Short: "Show your todos as an Eisenhower matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := connect(cmd)
			if err != nil {
				return err
			}

			snap, err := sess.settled(func(ctx context.Context) {
				sess.dispatcher.Fetch(ctx)
			})
			if err != nil {
				return err
			}

			renderMatrix(cmd.OutOrStdout(), snap.Todos)
			return nil
		},
	}
}

func newAddCommand() *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			priorityStr, _ := cmd.Flags().GetString("priority")
			dueStr, _ := cmd.Flags().GetString("due")

			priority := entities.Priority(priorityStr)
			if !priority.IsValid() {
				return fmt.Errorf("priority must be low, medium or high")
			}

			dueDate, err := parseDue(dueStr)
			if err != nil {
				return err
			}

			sess, err := connect(cmd)
			if err != nil {
				return err
			}

			snap, err := sess.settled(func(ctx context.Context) {
				sess.dispatcher.Create(ctx, api.CreateRequest{
					Title:       args[0],
					Description: description,
					Priority:    priority,
					DueDate:     dueDate,
				})
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", snap.Todos[0].ID)
			return nil
		},
	}

	addCmd.Flags().String("description", "", "optional description")
	addCmd.Flags().String("priority", "medium", "low, medium or high")
	addCmd.Flags().String("due", "", "due date (YYYY-MM-DD), defaults to today")

	return addCmd
}

func newDoneCommand() *cobra.Command {
	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a todo completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			undo, _ := cmd.Flags().GetBool("undo")
			return toggleTodo(cmd, args[0], !undo)
		},
	}

	doneCmd.Flags().Bool("undo", false, "mark as not completed instead")

	return doneCmd
}

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid todo id: %w", err)
			}

			sess, err := connect(cmd)
			if err != nil {
				return err
			}

			if _, err := sess.settled(func(ctx context.Context) {
				sess.dispatcher.Delete(ctx, id)
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			return nil
		},
	}
}

func toggleTodo(cmd *cobra.Command, idStr string, completed bool) error {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("invalid todo id: %w", err)
	}

	sess, err := connect(cmd)
	if err != nil {
		return err
	}

	if _, err := sess.settled(func(ctx context.Context) {
		sess.dispatcher.Toggle(ctx, id, completed)
	}); err != nil {
		return err
	}

	if completed {
		fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", id)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Reopened %s\n", id)
	}
	return nil
}

func parseDue(due string) (time.Time, error) {
	if due == "" {
		return time.Now(), nil
	}

	t, err := time.ParseInLocation("2006-01-02", due, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q, expected YYYY-MM-DD", due)
	}
	return t, nil
}

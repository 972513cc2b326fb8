package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewJobCmd создаёт группу команд для управления jobs.
func NewJobCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage sync jobs",
	}

	cmd.AddCommand(
		newJobTriggerCmd(clientFn, outputFn),
	)

	return cmd
}

func newJobTriggerCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "trigger CUSTOMER CONFIG",
		Short: "Trigger a sync job for a customer config",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			job, err := client.TriggerJob(args[0], args[1])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Job requested: %s", job.ID))
			out.Job(job)
			return nil
		},
	}
}

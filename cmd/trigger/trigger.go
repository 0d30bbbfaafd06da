package trigger

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/TestingSDK2/marketplace-notifier/app"
	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/TestingSDK2/marketplace-notifier/queue"
	"github.com/TestingSDK2/marketplace-notifier/util"
)

type options struct {
	id     string
	parent string
	file   string
}

// NewTriggerCommand dispatches one created-document event by hand.
func NewTriggerCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:       "trigger <order|review|announcement>",
		Short:     "runs one trigger against a document read from a JSON file",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{consts.OrderCreated, consts.ReviewCreated, consts.AnnouncementCreated},
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := opts.event(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			app, err := app.New(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			result := app.TriggerService.Dispatch(ctx, event)
			return util.PrettyPrint(result)
		},
	}
	cmd.Flags().StringVar(&opts.id, "id", "", "id of the created document")
	cmd.Flags().StringVar(&opts.parent, "parent", "", "parent product id, for reviews")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "JSON file holding the created document")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (o *options) event(kind string) (model.Event, error) {
	event := model.Event{
		Kind:       kind,
		DocumentID: o.id,
		ParentID:   o.parent,
	}
	if o.file == "" {
		return event, nil
	}
	data, err := os.ReadFile(o.file)
	if err != nil {
		return event, errors.Wrap(err, "unable to read document file")
	}
	event.Document, err = queue.DocumentFromJSON(data)
	return event, err
}

package cli

import (
	"encoding/json"

	"spedicija/internal/core/features"
	"spedicija/internal/core/model"
	gatewaydom "spedicija/internal/services/gateway/domain"

	"github.com/spf13/cobra"
)

func newPredictCmd() *cobra.Command {
	var modelPath, costs, times string
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run the model locally on comma separated factors",
		Long: `predict validates the factors the way /predict does and runs the model file
directly. It needs no api key and writes no audit entry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := features.ParseList(costs)
			if err != nil {
				return err
			}
			t, err := features.ParseList(times)
			if err != nil {
				return err
			}
			v, err := features.Build(c, t)
			if err != nil {
				return err
			}
			m, err := model.Load(modelPath)
			if err != nil {
				return err
			}
			total, travel, err := m.Predict(v)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(gatewaydom.PredictOutput{TotalCost: total, TravelTime: travel})
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "model.yaml", "Model file")
	cmd.Flags().StringVar(&costs, "costs", "", "Five comma separated cost factors")
	cmd.Flags().StringVar(&times, "times", "", "Five comma separated time factors")
	_ = cmd.MarkFlagRequired("costs")
	_ = cmd.MarkFlagRequired("times")
	return cmd
}

// Package main provides stressctl, a command line front end to the stress classifier.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"stress-backend/internal/detection"
	"stress-backend/internal/stress"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stressctl",
		Short:         "Classify stress levels from emotions and daily routines",
		SilenceUsage: true,
	}
	root.AddCommand(
		classifyCmd(),
		recommendCmd(),
		decideCmd(),
	)
	return root
}

func classifyCmd() *cobra.Command {
	var emotion, routine string
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Derive a stress level and recommendation",
		Long: `Derive a stress level from a detected emotion and an optional daily routine.

Examples:
  stressctl classify --emotion Sad
  stressctl classify --emotion Happy --routine "long hours at work"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := stress.ParseEmotion(emotion)
			if err != nil {
				return err
			}
			level, err := stress.Classify(parsed, routine)
			if err != nil {
				return err
			}
			text, err := stress.Recommend(level)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stress level: %s\n%s\n", level, text)
			return nil
		},
	}
	cmd.Flags().StringVar(&emotion, "emotion", "", "detected emotion (Angry, Disgust, Fear, Happy, Sad, Surprise, Neutral)")
	cmd.Flags().StringVar(&routine, "routine", "", "free-text daily routine")
	_ = cmd.MarkFlagRequired("emotion")
	return cmd
}

func recommendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <LOW|MEDIUM|HIGH>",
		Short: "Print the recommendation for a stress level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := stress.ParseLevel(args[0])
			if err != nil {
				return err
			}
			text, err := stress.Recommend(level)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func decideCmd() *cobra.Command {
	th := detection.DefaultThresholds()
	cmd := &cobra.Command{
		Use:   "decide <s1,s2,...,s7>",
		Short: "Collapse raw classifier scores into an emotion",
		Long: `Collapse seven comma separated classifier scores, in the order
Angry, Disgust, Fear, Happy, Sad, Surprise, Neutral, into a single emotion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scores, err := parseScores(args[0])
			if err != nil {
				return err
			}
			pred, err := detection.Decide(scores, th)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%.2f, raw %s)\n", pred.Emotion, pred.Confidence, pred.RawLabel)
			return nil
		},
	}
	cmd.Flags().Float64Var(&th.Happy, "happy-threshold", th.Happy, "minimum confidence to keep Happy")
	cmd.Flags().Float64Var(&th.Neutral, "neutral-threshold", th.Neutral, "minimum confidence to report Neutral")
	return cmd
}

func parseScores(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	scores := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parse score %q: %w", p, err)
		}
		scores = append(scores, v)
	}
	return scores, nil
}

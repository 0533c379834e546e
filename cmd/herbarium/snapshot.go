package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/virtual-herbarium/internal/catalog"
	"github.com/appengine-ltd/virtual-herbarium/internal/scene"
	"github.com/appengine-ltd/virtual-herbarium/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render one frame of the tour to a PNG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		query, _ := cmd.Flags().GetString("query")
		opts := snapshot.DefaultOptions()
		opts.Yaw, _ = cmd.Flags().GetFloat64("yaw")
		opts.Width, _ = cmd.Flags().GetInt("width")
		opts.Height, _ = cmd.Flags().GetInt("height")

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		snap, err := e.coord.Sync(ctx)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		if snap.State == catalog.StateFailed {
			return fmt.Errorf("load dataset: %w", snap.Err)
		}

		c := scene.NewComposer(scene.Options{
			Variants: e.variants,
			Layout:   e.cfg.SceneLayout(),
			Animator: scene.NewAnimator(e.cfg.Animation.Step),
			Logger:   e.logger,
			Metrics:  e.metrics,
		})
		c.SetRecords(snap.Records)
		c.SetQuery(query)
		frame, err := c.Frame()
		if err != nil {
			return err
		}
		if err := snapshot.SavePNG(out, frame, opts); err != nil {
			return err
		}
		e.logger.Info("snapshot written", "path", out, "plants", len(frame.Instances), "query", query)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().StringP("out", "o", "herbarium.png", "Output PNG path")
	snapshotCmd.Flags().StringP("query", "q", "", "Search text applied before rendering")
	snapshotCmd.Flags().Float64("yaw", 0, "Camera angle around the circle, in radians")
	snapshotCmd.Flags().Int("width", 960, "Image width in pixels")
	snapshotCmd.Flags().Int("height", 600, "Image height in pixels")
}

package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-batch-pathtracer/pkg/config"
	"github.com/df07/go-batch-pathtracer/pkg/logging"
	"github.com/df07/go-batch-pathtracer/pkg/scene"
)

// ListScenes prints the built-in scenes and any scene documents found in --dir.
func ListScenes(ctx *cli.Context) error {
	logger := setupLogging(ctx, config.Default())
	defer logging.Sync(logger)

	scenes := scene.DefaultRegistry().List()
	if dir := ctx.String("dir"); dir != "" {
		files, err := scene.ListFiles(dir, logger)
		if err != nil {
			return err
		}
		scenes = append(scenes, files...)
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Type", "Description"})
	for _, info := range scenes {
		id := info.ID
		if info.FilePath != "" {
			id = info.FilePath
		}
		table.Append([]string{id, info.DisplayName, info.Type, info.Description})
	}
	table.Render()

	return nil
}

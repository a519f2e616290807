package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/herb-harvest/internal/flow"
	"github.com/sells-group/herb-harvest/internal/harvest"
	"github.com/sells-group/herb-harvest/internal/i18n"
	"github.com/sells-group/herb-harvest/internal/model"
)

var harvestsCmd = &cobra.Command{
	Use:   "harvests",
	Short: "List, add, edit and export harvests",
}

// -- harvests list --

var harvestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List harvests, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, false)
		if err != nil {
			return err
		}
		defer env.Close()

		list, err := env.Harvests.List(ctx)
		if err != nil {
			return eris.Wrap(err, "harvests list")
		}
		if len(list) == 0 {
			fmt.Fprintln(os.Stderr, env.Localizer.Translate("No Harvests Yet", nil))
			return nil
		}
		formatHarvestList(cmd.OutOrStdout(), env.Localizer, list)
		return nil
	},
}

// -- harvests show --

var harvestsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one harvest as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, false)
		if err != nil {
			return err
		}
		defer env.Close()

		h, err := env.Harvests.Get(ctx, args[0])
		if errors.Is(err, harvest.ErrNotFound) {
			return eris.New(env.Localizer.Translate("Harvest Not Found", nil))
		}
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), h)
	},
}

// -- harvests add / edit --

var harvestsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a harvest; the photo is verified before saving",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		form, err := formFromFlags(cmd)
		if err != nil {
			return err
		}

		env, err := initEnv(ctx, true)
		if err != nil {
			return err
		}
		defer env.Close()

		h, err := env.Add.Submit(ctx, form)
		if err != nil {
			return describeFlowError(env.Localizer, err)
		}

		t := env.Localizer.Translate
		fmt.Fprintln(cmd.OutOrStdout(), t("Harvest Recorded!", nil))
		fmt.Fprintln(cmd.OutOrStdout(), t("{{quantity}} {{unit}} of {{herbName}} has been saved.", map[string]any{
			"quantity": h.Quantity,
			"unit":     t(h.Unit, nil),
			"herbName": t(h.HerbName, nil),
		}))
		fmt.Fprintf(cmd.OutOrStdout(), "id: %s\n", h.ID)
		return nil
	},
}

var harvestsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a harvest; unset flags keep their current values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, true)
		if err != nil {
			return err
		}
		defer env.Close()

		existing, err := env.Edit.Load(ctx, args[0])
		if err != nil {
			return describeFlowError(env.Localizer, err)
		}

		form, err := formFromFlags(cmd)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("herb") {
			form.HerbName = existing.HerbName
		}
		if !cmd.Flags().Changed("quantity") {
			form.Quantity = existing.Quantity
		}
		if !cmd.Flags().Changed("unit") {
			form.Unit = existing.Unit
		}

		if _, err := env.Edit.Submit(ctx, args[0], form); err != nil {
			return describeFlowError(env.Localizer, err)
		}
		t := env.Localizer.Translate
		fmt.Fprintln(cmd.OutOrStdout(), t("Harvest Updated!", nil))
		fmt.Fprintln(cmd.OutOrStdout(), t("Your changes have been saved.", nil))
		return nil
	},
}

// -- harvests export --

var harvestsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export harvests as GeoJSON or XLSX",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		env, err := initEnv(ctx, false)
		if err != nil {
			return err
		}
		defer env.Close()

		list, err := env.Harvests.List(ctx)
		if err != nil {
			return eris.Wrap(err, "harvests export")
		}

		var w io.Writer = cmd.OutOrStdout()
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return eris.Wrap(err, "harvests export: create file")
			}
			defer f.Close() //nolint:errcheck
			w = f
		}

		switch format {
		case "geojson":
			return harvest.ExportGeoJSON(w, list)
		case "xlsx":
			return harvest.ExportXLSX(w, list)
		default:
			return eris.Errorf("harvests export: unsupported format %q", format)
		}
	},
}

func addFormFlags(cmd *cobra.Command) {
	cmd.Flags().String("herb", "", "herb name")
	cmd.Flags().Float64("quantity", 0, "harvested quantity")
	cmd.Flags().String("unit", model.DefaultUnit, "quantity unit")
	cmd.Flags().String("location", "", `GPS as "lat, lon"`)
	cmd.Flags().String("photo", "", "path to the harvest photo")
}

func formFromFlags(cmd *cobra.Command) (flow.HarvestForm, error) {
	herb, _ := cmd.Flags().GetString("herb")
	qty, _ := cmd.Flags().GetFloat64("quantity")
	unit, _ := cmd.Flags().GetString("unit")
	loc, _ := cmd.Flags().GetString("location")
	photoPath, _ := cmd.Flags().GetString("photo")

	form := flow.HarvestForm{HerbName: herb, Quantity: qty, Unit: unit, Location: loc}
	if photoPath == "" {
		return form, nil
	}
	data, err := os.ReadFile(photoPath)
	if err != nil {
		return flow.HarvestForm{}, eris.Wrap(err, "read photo")
	}
	form.Photo = &flow.Photo{
		Filename:    filepath.Base(photoPath),
		ContentType: mime.TypeByExtension(filepath.Ext(photoPath)),
		Data:        data,
	}
	return form, nil
}

// describeFlowError turns flow errors into localized CLI messages.
func describeFlowError(loc *i18n.Localizer, err error) error {
	var rej *flow.RejectedError
	var ve *flow.ValidationError
	switch {
	case errors.As(err, &rej):
		return eris.Errorf("%s: %s", loc.Translate("Photo Verification Failed", nil), rej.Reason)
	case errors.As(err, &ve):
		return ve
	case errors.Is(err, harvest.ErrNotFound):
		return eris.New(loc.Translate("Harvest Not Found", nil))
	default:
		return err
	}
}

func formatHarvestList(w io.Writer, loc *i18n.Localizer, list []model.Harvest) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\t%s\t%s\t%s\n",
		loc.Translate("Herb Name", nil),
		loc.Translate("Quantity", nil),
		loc.Translate("Harvested on", nil),
		loc.Translate("GPS Coordinates", nil),
	)
	for _, h := range list {
		fmt.Fprintf(tw, "%s\t%s\t%g %s\t%s\t%s\n",
			h.ID,
			loc.Translate(h.HerbName, nil),
			h.Quantity, loc.Translate(h.Unit, nil),
			h.Date.Format("2006-01-02 15:04"),
			h.GPS,
		)
	}
	_ = tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode json")
}

func init() {
	addFormFlags(harvestsAddCmd)
	addFormFlags(harvestsEditCmd)
	harvestsExportCmd.Flags().String("format", "geojson", "export format: geojson or xlsx")
	harvestsExportCmd.Flags().String("out", "", "output file (default stdout)")

	harvestsCmd.AddCommand(harvestsListCmd, harvestsShowCmd, harvestsAddCmd, harvestsEditCmd, harvestsExportCmd)
	rootCmd.AddCommand(harvestsCmd)
}

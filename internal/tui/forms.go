package tui

import (
	"github.com/charmbracelet/huh"
)

func CreateOutputForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("prefix").
				Title("Prefix").
				Description("Root of the channel tree (PREFIX/CHANNEL/SUBDIR)").
				Value(&values.Prefix).
				Placeholder("./local").
				Validate(ValidatePrefix),

			huh.NewConfirm().
				Key("dry_run").
				Title("Dry Run").
				Description("Print what would be copied without writing").
				Value(&values.DryRun),

			huh.NewConfirm().
				Key("progress").
				Title("Progress Bar").
				Description("Show a progress bar per package directory").
				Value(&values.Progress),
		),
	).WithTheme(formTheme(false))
}

func CreateIndexForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("enabled").
				Title("Index Channels").
				Description("Run the indexer once per channel after distributing").
				Value(&values.IndexEnabled),

			huh.NewInput().
				Key("command").
				Title("Indexer Command").
				Description("The channel directory is appended as the last argument").
				Value(&values.IndexCommand).
				Placeholder("conda index").
				Validate(ValidateCommand),
		),
	).WithTheme(formTheme(false))
}

func CreateStateForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("enabled").
				Title("Record Placements").
				Description("Keep .chuukaibutsu-state.json under the prefix").
				Value(&values.StateEnabled),
		),
	).WithTheme(formTheme(false))
}

func CreateLoggingForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("level").
				Title("Log Level").
				Description("Minimum log level to display").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&values.LogLevel),

			huh.NewSelect[string]().
				Key("format").
				Title("Log Format").
				Description("Output format for logs").
				Options(
					huh.NewOption("Pretty (human-readable)", "pretty"),
					huh.NewOption("JSON (structured)", "json"),
				).
				Value(&values.LogFormat),
		),
	).WithTheme(formTheme(false))
}

func GetFormForCategory(category string, values *ConfigValues) *huh.Form {
	switch category {
	case "output":
		return CreateOutputForm(values)
	case "index":
		return CreateIndexForm(values)
	case "state":
		return CreateStateForm(values)
	case "logging":
		return CreateLoggingForm(values)
	default:
		return nil
	}
}

package config

import "time"

type Log struct {
	LogLevel string `mapstructure:"level" json:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR" jsonschema:"enum=DEBUG,enum=INFO,enum=WARN,enum=ERROR,default=INFO"`
	LogFile  string `mapstructure:"file" json:"file" jsonschema:"description=Log file path. Empty logs to stderr outside the TUI"`
}

type Editor struct {
	Trigger         string        `mapstructure:"trigger" json:"trigger" validate:"max=4" jsonschema:"description=Leading text that opens prompt suggestions,default=/"`
	SuggestionLimit int           `mapstructure:"suggestionLimit" json:"suggestionLimit" validate:"gte=1,lte=50" jsonschema:"default=8"`
	ToastDuration   time.Duration `mapstructure:"toastDuration" json:"toastDuration" validate:"gt=0" jsonschema:"type=string,description=How long toasts stay visible,default=2s"`
	PreviewMarkdown bool          `mapstructure:"previewMarkdown" json:"previewMarkdown" jsonschema:"description=Render message previews as markdown,default=true"`
}

type Theme struct {
	Name      string `mapstructure:"name" json:"name" validate:"omitempty,oneof=dark light" jsonschema:"enum=dark,enum=light,default=dark"`
	Accent    string `mapstructure:"accent" json:"accent" jsonschema:"default=205"`
	Muted     string `mapstructure:"muted" json:"muted" jsonschema:"default=240"`
	Title     string `mapstructure:"title" json:"title" jsonschema:"default=99"`
	Success   string `mapstructure:"success" json:"success" jsonschema:"default=#04B575"`
	Error     string `mapstructure:"error" json:"error" jsonschema:"default=#FF5F87"`
	Selection string `mapstructure:"selection" json:"selection" jsonschema:"default=62"`
}

type ConfigSchema struct {
	DBPath string `mapstructure:"dbPath" json:"dbPath" validate:"required" jsonschema:"description=Path to the SQLite prompt library"`
	Log    Log    `mapstructure:"log" json:"log"`
	Editor Editor `mapstructure:"editor" json:"editor"`
	Theme  Theme  `mapstructure:"theme" json:"theme"`
	KeyMap KeyMap `mapstructure:"keymap" json:"keymap"`

	// Internal fields for printing
	sources map[string][]configSource
}

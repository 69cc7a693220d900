package models

// Settings represents the application configuration
type Settings struct {
	Export  ExportSettings  `yaml:"export" mapstructure:"export"`
	History HistorySettings `yaml:"history" mapstructure:"history"`
	UI      UISettings      `yaml:"ui" mapstructure:"ui"`
	Preview PreviewSettings `yaml:"preview" mapstructure:"preview"`
	Log     LogSettings     `yaml:"log" mapstructure:"log"`
}

// ExportSettings controls the generated document
type ExportSettings struct {
	Filename string `yaml:"filename" mapstructure:"filename"`
	Title    string `yaml:"title" mapstructure:"title"`
	Theme    string `yaml:"theme" mapstructure:"theme"`
}

type HistorySettings struct {
	Capacity int `yaml:"capacity" mapstructure:"capacity"`
}

// UISettings controls UI timings and defaults
type UISettings struct {
	ToastDurationMs     int  `yaml:"toast_duration_ms" mapstructure:"toast_duration_ms"`
	DeleteDelayMs       int  `yaml:"delete_delay_ms" mapstructure:"delete_delay_ms"`
	NestedDeleteDelayMs int  `yaml:"nested_delete_delay_ms" mapstructure:"nested_delete_delay_ms"`
	ShowCode            bool `yaml:"show_code" mapstructure:"show_code"`
}

type PreviewSettings struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

type LogSettings struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Export: ExportSettings{
			Filename: "my-bootstrap-page.html",
			Title:    "My Bootstrap Website",
			Theme:    "default",
		},
		History: HistorySettings{
			Capacity: 50,
		},
		UI: UISettings{
			ToastDurationMs:     3000,
			DeleteDelayMs:       150,
			NestedDeleteDelayMs: 200,
			ShowCode:            true,
		},
		Preview: PreviewSettings{
			Addr: "127.0.0.1:8088",
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

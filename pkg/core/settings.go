package core

// Theme selects the UI color scheme; ThemeSystem defers to the OS preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Temperature units for weather display.
const (
	UnitCelsius    = "celsius"
	UnitFahrenheit = "fahrenheit"
)

// AppSettings controls general application behavior.
type AppSettings struct {
	Theme                  Theme  `json:"theme"`
	StartMinimized         bool   `json:"startMinimized"`
	StartOnLogin           bool   `json:"startOnLogin"`
	MinimizeOnClose        bool   `json:"minimizeOnClose"`
	AlwaysOnTop            bool   `json:"alwaysOnTop"`
	ShowInTaskbar          bool   `json:"showInTaskbar"`
	DateFormat             string `json:"dateFormat"` // system | US | EU | ISO
	TimeFormat             string `json:"timeFormat"` // 12h | 24h
	SpellCheck             bool   `json:"spellCheck"`
	AutoSaveDelayMS        int    `json:"autoSaveDelay"`
	HasCompletedOnboarding bool   `json:"hasCompletedOnboarding"`
}

// AISettings configures the local language-model server integration.
type AISettings struct {
	ServerURL          string  `json:"serverUrl"`
	Model              string  `json:"model"`
	Temperature        float64 `json:"temperature"`
	MaxTokens          int     `json:"maxTokens"`
	SystemPrompt       string  `json:"systemPrompt"`
	IncludeNoteContext bool    `json:"includeNoteContext"`
	SaveChatHistory    bool    `json:"saveChatHistory"`
}

// DataSettings configures storage, backup, and export behavior.
type DataSettings struct {
	DataLocation    string `json:"dataLocation"`
	BackupEnabled   bool   `json:"backupEnabled"`
	BackupFrequency string `json:"backupFrequency"` // hourly | daily | weekly
	BackupRetention int    `json:"backupRetention"`
	ExportFormat    string `json:"exportFormat"` // markdown | json | txt
}

// NotificationSettings configures reminders.
type NotificationSettings struct {
	DailyReminder bool   `json:"dailyReminder"`
	ReminderTime  string `json:"reminderTime"` // HH:MM
	Sound         bool   `json:"sound"`
}

// WeatherSettings configures journal-context weather enrichment.
type WeatherSettings struct {
	Enabled            bool   `json:"enabled"`
	Location           string `json:"location"`
	AutoDetectLocation bool   `json:"autoDetectLocation"`
	TemperatureUnit    string `json:"temperatureUnit"`
	APIKey             string `json:"apiKey"`
}

// PublishingSettings configures the content-publishing integration.
type PublishingSettings struct {
	Enabled                bool    `json:"enabled"`
	APIURL                 string  `json:"apiUrl"`
	AuthorID               string  `json:"authorId"`
	AuthorName             string  `json:"authorName"`
	DefaultMonetization    string  `json:"defaultMonetization"` // free | subscription | per_entry | tip_jar
	DefaultVisibility      string  `json:"defaultVisibility"`   // public | subscribers_only | private
	DefaultPrice           float64 `json:"defaultPrice"`
	IncludeWeatherContext  bool    `json:"includeWeatherContext"`
	IncludeLocationContext bool    `json:"includeLocationContext"`
	AutoAuditBeforePublish bool    `json:"autoAuditBeforePublish"`
}

// Settings is the full composite record. Every section is always present;
// decoding persisted data over DefaultSettings keeps defaults for any
// section or field the saved record is missing.
type Settings struct {
	App           AppSettings          `json:"app"`
	AI            AISettings           `json:"ai"`
	Data          DataSettings         `json:"data"`
	Notifications NotificationSettings `json:"notifications"`
	Weather       WeatherSettings      `json:"weather"`
	Publishing    PublishingSettings   `json:"publishing"`
}

// SettingsPatch is a section-granular partial update. Nil sections are left
// untouched; non-nil sections replace the current section whole.
type SettingsPatch struct {
	App           *AppSettings          `json:"app,omitempty"`
	AI            *AISettings           `json:"ai,omitempty"`
	Data          *DataSettings         `json:"data,omitempty"`
	Notifications *NotificationSettings `json:"notifications,omitempty"`
	Weather       *WeatherSettings      `json:"weather,omitempty"`
	Publishing    *PublishingSettings   `json:"publishing,omitempty"`
}

// Apply merges the patch into the settings, section by section.
func (s *Settings) Apply(p SettingsPatch) {
	if p.App != nil {
		s.App = *p.App
	}
	if p.AI != nil {
		s.AI = *p.AI
	}
	if p.Data != nil {
		s.Data = *p.Data
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	if p.Weather != nil {
		s.Weather = *p.Weather
	}
	if p.Publishing != nil {
		s.Publishing = *p.Publishing
	}
}

// DefaultSettings returns a settings record with every section at its defaults.
func DefaultSettings() Settings {
	return Settings{
		App: AppSettings{
			Theme:           ThemeSystem,
			MinimizeOnClose: true,
			ShowInTaskbar:   true,
			DateFormat:      "system",
			TimeFormat:      "12h",
			SpellCheck:      true,
			AutoSaveDelayMS: 500,
		},
		AI: AISettings{
			ServerURL:          "http://localhost:11434",
			Model:              "llama3.2:3b",
			Temperature:        0.7,
			MaxTokens:          500,
			SystemPrompt:       "You are a friendly assistant embedded in a journaling app. Keep responses concise and practical, and match the user's tone.",
			IncludeNoteContext: true,
		},
		Data: DataSettings{
			BackupEnabled:   true,
			BackupFrequency: "daily",
			BackupRetention: 7,
			ExportFormat:    "markdown",
		},
		Notifications: NotificationSettings{
			ReminderTime: "20:00",
			Sound:        true,
		},
		Weather: WeatherSettings{
			Enabled:            true,
			AutoDetectLocation: true,
			TemperatureUnit:    UnitCelsius,
		},
		Publishing: PublishingSettings{
			DefaultMonetization:    "free",
			DefaultVisibility:      "private",
			IncludeWeatherContext:  true,
			AutoAuditBeforePublish: true,
		},
	}
}

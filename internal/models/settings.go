package models

import "fmt"

// SettingsAction is a button on the settings screen.
type SettingsAction struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// Notice returns the message shown when the action is triggered.
// None of the settings actions do anything yet.
func (a SettingsAction) Notice() string {
	return fmt.Sprintf("%s is not implemented yet.", a.Label)
}

// AppInfo holds the metadata rendered on the settings screen.
type AppInfo struct {
	Name        string           `json:"name" yaml:"name"`
	Version     string           `json:"version" yaml:"version"`
	Description string           `json:"description" yaml:"description"`
	Actions     []SettingsAction `json:"actions" yaml:"-"`
}

// DefaultActions returns the placeholder settings actions.
func DefaultActions() []SettingsAction {
	return []SettingsAction{
		{Key: "theme", Label: "Change Theme"},
		{Key: "notifications", Label: "Notifications"},
		{Key: "clear-history", Label: "Clear History"},
	}
}

// Action looks up a settings action by key.
func (a *AppInfo) Action(key string) (SettingsAction, bool) {
	for _, action := range a.Actions {
		if action.Key == key {
			return action, true
		}
	}
	return SettingsAction{}, false
}

package config

import "encoding/json"

// Key bindings
const (
	KeyActionQuit            = "quit"
	KeyActionOpen            = "open"
	KeyActionBack            = "back"
	KeyActionEdit            = "edit"
	KeyActionClose           = "close"
	KeyActionAddToExperiment = "addToExperiment"
	KeyActionDelete          = "delete"
	KeyActionNew             = "new"
	KeyActionToggle          = "toggle"
	KeyActionPaste           = "paste"
	KeyActionNextVariable    = "nextVariable"
	KeyActionConfirm         = "confirm"
	KeyActionCancel          = "cancel"
)

type KeyMap struct {
	Quit            []string `mapstructure:"quit" json:"quit" jsonschema:"description=Exit the application,default=ctrl+c"`
	Open            []string `mapstructure:"open" json:"open" jsonschema:"description=Open the selected prompt,default=enter"`
	Back            []string `mapstructure:"back" json:"back" jsonschema:"description=Return to the prompt list,default=esc"`
	Edit            []string `mapstructure:"edit" json:"edit" jsonschema:"description=Open the editor dialog for the selected message,default=e"`
	Close           []string `mapstructure:"close" json:"close" jsonschema:"description=Close the editor dialog,default=ctrl+s"`
	AddToExperiment []string `mapstructure:"addToExperiment" json:"addToExperiment" jsonschema:"description=Add the selected prompt to the experiment,default=a"`
	Delete          []string `mapstructure:"delete" json:"delete" jsonschema:"description=Delete the selected prompt,default=d"`
	New             []string `mapstructure:"new" json:"new" jsonschema:"description=Create a new prompt,default=n"`
	Toggle          []string `mapstructure:"toggle" json:"toggle" jsonschema:"description=Expand or collapse a section"`
	Paste           []string `mapstructure:"paste" json:"paste" jsonschema:"description=Paste the clipboard into the active variable,default=ctrl+v"`
	NextVariable    []string `mapstructure:"nextVariable" json:"nextVariable" jsonschema:"description=Move to the next variable,default=ctrl+n"`
	Confirm         []string `mapstructure:"confirm" json:"confirm" jsonschema:"description=Confirm a dialog,default=y"`
	Cancel          []string `mapstructure:"cancel" json:"cancel" jsonschema:"description=Cancel a dialog,default=n"`

	keyCache map[string][]string
}

// Get key bindings for an action
func (k *KeyMap) GetKeys(action string) []string {
	// Initialize cache if needed
	if k.keyCache == nil {
		k.keyCache = make(map[string][]string)
		jsonBytes, err := json.Marshal(k)
		if err != nil {
			return nil
		}
		if err := json.Unmarshal(jsonBytes, &k.keyCache); err != nil {
			return nil
		}
	}

	return k.keyCache[action]
}

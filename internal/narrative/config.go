package narrative

// PromptConfig is one system-plus-template prompt pair. Templates use
// {placeholder} substitution; see Narrator for the supported placeholders.
type PromptConfig struct {
	System   string `yaml:"system"`
	Template string `yaml:"template"`
}

// Config configures the external text-generation collaborator. Narration is
// strictly post-selection decoration: any failure falls back to the
// configured templates and never fails the pipeline.
type Config struct {
	Enabled        bool           `yaml:"enabled"`
	Endpoint       string         `yaml:"endpoint"`
	Model          string         `yaml:"model"`
	CompletionPath string         `yaml:"completion_path"`
	TimeoutSeconds float64        `yaml:"timeout_seconds"`
	Options        map[string]any `yaml:"options"`

	GlobalCues string `yaml:"global_cues"`

	RoomPrompt    PromptConfig `yaml:"room_prompt"`
	ItemPrompt    PromptConfig `yaml:"item_prompt"`
	MonsterPrompt PromptConfig `yaml:"monster_prompt"`

	RoomFallback    string `yaml:"room_fallback"`
	ItemFallback    string `yaml:"item_fallback"`
	MonsterFallback string `yaml:"monster_fallback"`

	// NameCorpus trains the markov generator that names monsters in
	// fallback text. Empty uses the built-in corpus.
	NameCorpus []string `yaml:"name_corpus"`

	// NameSeed seeds the name generator so narrated output is reproducible.
	NameSeed int64 `yaml:"name_seed"`
}

// DefaultConfig returns an offline-friendly narration setup pointing at a
// local Ollama instance, disabled by default.
func DefaultConfig() Config {
	return Config{
		Enabled:        false,
		Endpoint:       "http://127.0.0.1:11434",
		Model:          "llama3",
		CompletionPath: "/api/generate",
		TimeoutSeconds: 60,
		GlobalCues:     "a crumbling dungeon beneath a drowned citadel",
		RoomPrompt: PromptConfig{
			System:   "You describe dungeon rooms in two short, vivid sentences.",
			Template: "Describe the {label} (reached via {path_summary}) in a dungeon themed: {global_cues}. Qualities: {tags}.",
		},
		ItemPrompt: PromptConfig{
			System:   "You name dungeon loot in at most three words.",
			Template: "Name a {entity_label} with {entity_tags} qualities found in the {room_label}.",
		},
		MonsterPrompt: PromptConfig{
			System:   "You name dungeon monsters in at most four words.",
			Template: "Name a {entity_label} exuding {entity_tags} menace haunting the {room_label}.",
		},
		RoomFallback:    "A {label} shrouded in gloom. The air tastes of {tags}.",
		ItemFallback:    "A {entity_label} imbued with {entity_tags} qualities rests here.",
		MonsterFallback: "{entity_name} the {entity_label} stalks the edges of the room.",
	}
}

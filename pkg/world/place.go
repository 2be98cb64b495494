package world

// Place is a location in the world, keyed by its coordinates.
type Place struct {
	Name             string      `json:"name" yaml:"name"`
	Description      string      `json:"description" yaml:"description"`
	Coordinates      Coordinates `json:"coordinates" yaml:"coordinates"`
	Objects          []string    `json:"objects" yaml:"objects"`
	NPCs             []string    `json:"npcs" yaml:"npcs"`
	EvolutionTrigger string      `json:"evolution_trigger" yaml:"evolution_trigger"` // empty means it cannot evolve
	Placeholder      bool        `json:"-" yaml:"-"`
}

// NewPlaceholder returns the minimal record used for unexplored coordinates
// until generated content replaces it.
func NewPlaceholder(c Coordinates) *Place {
	return &Place{
		Name:             "unexplored territory",
		Description:      "You find yourself in uncharted lands. The terrain seems wild and untouched.",
		Coordinates:      c,
		Objects:          []string{},
		NPCs:             []string{},
		EvolutionTrigger: GenericEvolutionTrigger,
		Placeholder:      true,
	}
}

// GenericEvolutionTrigger is assigned when nothing more specific was authored.
const GenericEvolutionTrigger = "When this place witnesses its first significant event"

// CanEvolve reports whether the place still has an evolution trigger.
func (p *Place) CanEvolve() bool {
	return p.EvolutionTrigger != ""
}

// FindObject returns the first object whose name contains target, ignoring case.
func (p *Place) FindObject(target string) (string, bool) {
	return findFold(p.Objects, target)
}

// FindNPC returns the first NPC whose name contains target, ignoring case.
func (p *Place) FindNPC(target string) (string, bool) {
	return findFold(p.NPCs, target)
}

func findFold(names []string, target string) (string, bool) {
	if Key(target) == "" {
		return "", false
	}
	for _, n := range names {
		if ContainsFold(n, target) {
			return n, true
		}
	}
	return "", false
}

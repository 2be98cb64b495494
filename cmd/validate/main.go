package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/legacy-engine/pkg/generation"
	"github.com/jwebster45206/legacy-engine/pkg/seed"
	"github.com/jwebster45206/legacy-engine/pkg/world"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.yaml>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &WorldValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("World file is valid!")
}

type WorldValidator struct {
	errors []string
}

func (v *WorldValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("world file must have .yaml extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ext)
	if !isValidWorldFilename(nameWithoutExt) {
		return fmt.Errorf("world filename '%s' must be lowercase snake_case (e.g., my_world.yaml, not my-world.yaml or MyWorld.yaml)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	w, err := seed.Parse(data)
	if err != nil {
		return fmt.Errorf("file %s: %w", filename, err)
	}

	v.errors = nil
	v.validateWorld(w)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *WorldValidator) validateWorld(w *seed.World) {
	npcs := make(map[string]world.NPC, len(w.NPCs))
	for _, n := range w.NPCs {
		npcs[world.Key(n.Name)] = n
	}

	for _, p := range w.Places {
		v.validateDescription(fmt.Sprintf("place %q", p.Name), p.Description)
		if p.Coordinates.World == "" {
			v.addError(fmt.Sprintf("place %q has no world in its coordinates", p.Name))
		}
		for _, name := range p.NPCs {
			n, ok := npcs[world.Key(name)]
			if !ok {
				v.addError(fmt.Sprintf("place %q lists NPC %q with no record", p.Name, name))
				continue
			}
			if n.Location != p.Coordinates {
				v.addError(fmt.Sprintf("NPC %q is listed in %q but located at %s", n.Name, p.Name, n.Location))
			}
		}
	}

	for _, n := range w.NPCs {
		v.validateDescription(fmt.Sprintf("NPC %q", n.Name), n.Description)
		v.validateIDFormat(fmt.Sprintf("NPC %q conversation_id", n.Name), n.ConversationID)
	}

	for _, it := range w.Items {
		v.validateDescription(fmt.Sprintf("item %q", it.Name), it.Description)
		switch it.Type {
		case world.ItemCommon, world.ItemLegendary:
		default:
			v.addError(fmt.Sprintf("item %q has unknown type %q", it.Name, it.Type))
		}
	}
}

func (v *WorldValidator) validateDescription(owner, description string) {
	if strings.TrimSpace(description) == "" {
		v.addError(fmt.Sprintf("%s has an empty description", owner))
		return
	}
	if generation.MarkupMentions(description).Unbalanced {
		v.addError(fmt.Sprintf("%s has unbalanced *markup*", owner))
	}
}

func (v *WorldValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}

	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *WorldValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var (
	validIDRegex       = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
	validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

func isValidWorldFilename(name string) bool {
	// Allow 'x.' prefix for experimental worlds
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}

// Command formstate-cli walks a form operation through its lifecycle. It
// loads an OpenAPI document, binds a controller to the chosen operation, and
// either replays a scripted submission or prompts for each transition
// interactively. Every state replacement is printed as it happens; the final
// state can be rendered as a status banner.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	formstate "github.com/goliatone/go-formstate"
	"github.com/goliatone/go-formstate/pkg/controller"
	"github.com/goliatone/go-formstate/pkg/lifecycle"
	"github.com/goliatone/go-formstate/pkg/lifecycle/policy"
	"github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/render"
)

// Payloads stay plain strings in the CLI; real hosts plug their own types.
type formController = controller.Controller[string, string]

func main() {
	source := flag.String("source", "openapi.json", "OpenAPI document path or URL")
	operation := flag.String("operation", "", "operation ID to bind (empty lists operations)")
	policyPath := flag.String("policy", "", "YAML transition policy (empty uses the strict default)")
	permissive := flag.Bool("permissive", false, "allow every transition instead of the strict default")
	interactive := flag.Bool("interactive", false, "prompt for each transition")
	bannerOut := flag.String("banner", "", "write the final state banner HTML to this file")
	flag.Parse()

	ctx := context.Background()

	loader := openapi.NewLoader(openapi.WithHTTPClient(http.DefaultClient))
	descriptors, err := formstate.LoadDescriptors(ctx, loader, parseSource(*source))
	if err != nil {
		log.Fatalf("Failed to load document: %v", err)
	}

	if *operation == "" {
		fmt.Println("Operations:")
		for _, id := range descriptors.IDs() {
			d, _ := descriptors.Get(id)
			fmt.Printf("  %-30s %s %s\n", id, d.Method, d.Path)
		}
		return
	}

	descriptor, ok := descriptors.Get(*operation)
	if !ok {
		log.Fatalf("Unknown operation %q (run without -operation to list)", *operation)
	}

	table, err := loadPolicy(*policyPath, *permissive)
	if err != nil {
		log.Fatalf("Failed to load policy: %v", err)
	}

	ctrl := formstate.ControllerFor[string, string](descriptor,
		controller.WithPolicy[string, string](table),
	)

	watchCtx, stopWatching := context.WithCancel(ctx)
	states := ctrl.Subscribe(watchCtx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for state := range states {
			fmt.Println(state)
		}
	}()

	if *interactive {
		err = runInteractive(ctrl)
	} else {
		err = runScripted(ctrl, descriptor)
	}
	if err != nil {
		log.Fatalf("Walk failed: %v", err)
	}

	stopWatching()
	<-done

	if *bannerOut != "" {
		html, err := render.Banner(ctrl.Current())
		if err != nil {
			log.Fatalf("Failed to render banner: %v", err)
		}
		if err := os.WriteFile(*bannerOut, []byte(html), 0o644); err != nil {
			log.Fatalf("Failed to write banner: %v", err)
		}
		fmt.Printf("Banner written to %s\n", *bannerOut)
	}
}

func parseSource(raw string) openapi.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return openapi.FromURL(path)
	}
	return openapi.FromFile(path)
}

func loadPolicy(path string, permissive bool) (*policy.Table, error) {
	if permissive {
		return policy.Permissive(), nil
	}
	if path == "" {
		return policy.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return policy.FromYAML(f)
}

// runScripted replays the happy path: load, validate, submit in quarters,
// succeed.
func runScripted(ctrl *formController, d openapi.Descriptor) error {
	if err := ctrl.Loaded(); err != nil {
		return err
	}
	ctrl.SetValid(true)
	for _, progress := range []float64{0, 0.25, 0.5, 0.75} {
		if err := ctrl.Submit(progress); err != nil {
			return err
		}
	}
	return ctrl.Success(ptr(fmt.Sprintf("%s %s ok", d.Method, d.Path)))
}

func runInteractive(ctrl *formController) error {
	for {
		current := ctrl.Current()
		choices := actionsFor(current)

		var choice string
		prompt := &survey.Select{
			Message: fmt.Sprintf("%s > next transition:", current.Variant()),
			Options: choices,
		}
		if err := survey.AskOne(prompt, &choice); err != nil {
			return err
		}

		if choice == "quit" {
			return nil
		}
		if err := apply(ctrl, choice); err != nil {
			fmt.Println(err)
		}
	}
}

// actionsFor offers the transitions that make sense from the current state.
// The controller's policy still has the final word.
func actionsFor(state lifecycle.State[string, string]) []string {
	var actions []string
	switch state.Variant() {
	case lifecycle.VariantLoading:
		actions = []string{"loaded", "load failed"}
	case lifecycle.VariantLoadFailed:
		actions = []string{"reload"}
	case lifecycle.VariantSubmitting:
		actions = []string{"progress", "success", "failure", "cancel", "submission cancelled"}
	case lifecycle.VariantDeleting:
		actions = []string{"delete successful", "delete failed"}
	default:
		if state.CanSubmit() {
			actions = []string{"submit", "delete", "toggle valid"}
		} else {
			actions = []string{"reload"}
		}
	}
	return append(actions, "quit")
}

func apply(ctrl *formController, action string) error {
	switch action {
	case "loaded":
		return ctrl.Loaded()
	case "load failed":
		return ctrl.LoadFailed(ptr("document unavailable"))
	case "reload":
		return ctrl.Load()
	case "submit":
		return ctrl.Submit(0)
	case "progress":
		return ctrl.Progress(askProgress())
	case "success":
		return ctrl.Success(nil)
	case "failure":
		return ctrl.Fail(ptr("server rejected submission"))
	case "cancel":
		ctrl.CancelSubmission()
		return nil
	case "submission cancelled":
		return ctrl.SubmissionCancelled()
	case "delete":
		return ctrl.Delete()
	case "delete successful":
		return ctrl.DeleteSuccessful(nil)
	case "delete failed":
		return ctrl.DeleteFailed(ptr("delete rejected"))
	case "toggle valid":
		ctrl.SetValid(!ctrl.Current().IsValid())
		return nil
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

func askProgress() float64 {
	var raw string
	prompt := &survey.Input{
		Message: "progress fraction [0..1]:",
		Default: "0.5",
	}
	if err := survey.AskOne(prompt, &raw); err != nil {
		return 0
	}
	var progress float64
	if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%g", &progress); err != nil {
		return 0
	}
	return progress
}

func ptr(s string) *string {
	return &s
}

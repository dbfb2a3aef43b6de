/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/valpere/obratno/internal/assessor"
	"github.com/valpere/obratno/internal/improver"
	"github.com/valpere/obratno/internal/session"
	"github.com/valpere/obratno/internal/translator"
)

// buildService constructs the translation backend from CLI parameters.
func buildService(name, credentials, ollamaURL, ollamaModel, mymemoryEmail string) (translator.Service, error) {
	switch name {
	case "google":
		return translator.NewGoogleService(credentials), nil
	case "ollama":
		return translator.NewOllamaService(ollamaURL, ollamaModel), nil
	case "mymemory":
		return translator.NewMyMemoryService(mymemoryEmail), nil
	default:
		return nil, fmt.Errorf("unknown translator: %s", name)
	}
}

// buildAssessor constructs the quality assessor, or returns nil for fallback
// mode. The decision is made here once; the session loop never probes.
func buildAssessor(backend, token, model, baseURL, ollamaURL string) session.Assessor {
	switch backend {
	case "gigachat":
		if token == "" {
			fmt.Fprintf(os.Stderr, "No GigaChat token found, running in fallback mode (no scoring)\n")
			return nil
		}
		return assessor.NewGigaChat(token, model, baseURL)
	case "ollama":
		return assessor.NewOllama(model, ollamaURL)
	case "none":
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown assessor backend %q, running in fallback mode\n", backend)
		return nil
	}
}

// buildImprover mirrors buildAssessor for the improvement backend.
func buildImprover(backend, token, model, baseURL, ollamaURL string) session.Improver {
	switch backend {
	case "gigachat":
		if token == "" {
			return nil
		}
		return improver.NewGigaChat(token, model, baseURL)
	case "ollama":
		return improver.NewOllama(model, ollamaURL)
	case "none":
		return nil
	default:
		return nil
	}
}

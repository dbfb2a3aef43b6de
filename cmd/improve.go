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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/obratno/internal"
	"github.com/valpere/obratno/internal/chunker"
	"github.com/valpere/obratno/internal/session"
	"github.com/valpere/obratno/internal/store"
	"github.com/valpere/obratno/internal/translator"
	"github.com/valpere/obratno/internal/validator"
)

const (
	sourceLang = "en"
	targetLang = "ru"
)

var (
	inputFile  string
	outputFile string

	noCache   bool
	noHistory bool
)

var improveCmd = &cobra.Command{
	Use:   "improve",
	Short: "Translate a file and iteratively improve the translation",
	Long: `Translate English text to Russian and improve it over several rounds.

Each round back-translates the current Russian candidate to English, asks the
LLM assessor for a similarity score and suggestions, and applies the suggested
improvements. Iteration stops early once the score reaches the threshold.

Translator backends:
  - google     Cloud Translation API (requires credentials)
  - ollama     Ollama LLM (self-hosted)
  - mymemory   MyMemory (free, 5000 chars/day)

Assessor/improver backends:
  - gigachat   Sber GigaChat (requires token, e.g. GIGACHAT_TOKEN)
  - ollama     Ollama LLM (self-hosted)
  - none       Fallback mode: translate/back-translate pairs only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		raw, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text := strings.TrimSpace(string(raw))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		dbPath := viper.GetString("db")
		var db *store.Store
		if !noHistory && dbPath != "" {
			db, err = store.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if !noCache {
				if cached, found, cacheErr := db.GetCachedBest(ctx, text, sourceLang, targetLang); cacheErr == nil && found {
					fmt.Fprintf(os.Stderr, "Using cached translation\n")
					if err := writeOutput(outputFile, cached); err != nil {
						return err
					}
					fmt.Printf("Reused best translation from history\n")
					return nil
				}
			}
		}

		serviceName := viper.GetString("translator")
		svc, err := buildService(serviceName,
			viper.GetString("credentials"),
			viper.GetString("ollama-url"),
			viper.GetString("ollama-model"),
			viper.GetString("mymemory-email"))
		if err != nil {
			return err
		}
		pair := translator.NewPair(svc, translator.ServiceConfig{}, sourceLang, targetLang)

		token := viper.GetString("gigachat-token")
		asr := buildAssessor(viper.GetString("assessor"), token,
			viper.GetString("assessor-model"), viper.GetString("gigachat-url"), viper.GetString("ollama-url"))
		imp := buildImprover(viper.GetString("improver"), token,
			viper.GetString("improver-model"), viper.GetString("gigachat-url"), viper.GetString("ollama-url"))

		ctrl := session.New(pair, asr, imp, session.Config{
			MaxIterations: viper.GetInt("iterations"),
			Threshold:     viper.GetFloat64("threshold"),
			StepTimeout:   viper.GetDuration("step-timeout"),
		})

		chunks := chunker.Split(text, viper.GetInt("max-chunk"))
		if len(chunks) > 1 {
			fmt.Fprintf(os.Stderr, "Input split into %d chunks\n", len(chunks))
		}

		val := validator.New()

		var results []string
		for ci, chunk := range chunks {
			sess, err := ctrl.Run(ctx, chunk)
			if err != nil {
				var terr *session.TranslationError
				if errors.As(err, &terr) && sess != nil {
					printTrace(sess)
				}
				return fmt.Errorf("chunk %d/%d: %w", ci+1, len(chunks), err)
			}

			printTrace(sess)

			best := sess.BestAttempt()
			if ok, verr := val.IsValid(best.RussianText, targetLang); !ok {
				fmt.Fprintf(os.Stderr, "Warning: translation validation failed: %v\n", verr)
			}
			if ok, verr := val.IsValid(best.BackTranslated, sourceLang); !ok {
				fmt.Fprintf(os.Stderr, "Warning: back-translation validation failed: %v\n", verr)
			}

			if db != nil {
				rec := internal.SessionRecord{
					ID:         uuid.New().String(),
					SourceText: chunk,
					SourceLang: sourceLang,
					TargetLang: targetLang,
					Service:    serviceName,
					Timestamp:  time.Now(),
				}
				if err := db.SaveSession(ctx, rec, sess); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to save session: %v\n", err)
				}
			}

			results = append(results, best.RussianText)
		}

		if err := writeOutput(outputFile, strings.Join(results, "\n\n")); err != nil {
			return err
		}

		fmt.Printf("Successfully improved %s→%s translation over %d chunk(s)\n", sourceLang, targetLang, len(chunks))
		return nil
	},
}

// printTrace writes the per-iteration session record to stderr in the shape
// callers expect: index, texts, score or "unavailable", suggestions likewise.
func printTrace(sess *session.Session) {
	for _, att := range sess.Attempts {
		fmt.Fprintf(os.Stderr, "\n--- Iteration %d ---\n", att.Iteration)
		fmt.Fprintf(os.Stderr, "Russian: %s\n", att.RussianText)
		fmt.Fprintf(os.Stderr, "Back-translated: %s\n", att.BackTranslated)
		if att.Scored {
			fmt.Fprintf(os.Stderr, "Similarity score: %.2f\n", att.Score)
			fmt.Fprintf(os.Stderr, "Suggestions: %s\n", att.Suggestions)
		} else {
			fmt.Fprintf(os.Stderr, "Similarity score: unavailable\n")
			fmt.Fprintf(os.Stderr, "Suggestions: unavailable\n")
		}
	}
	if best := sess.BestAttempt(); best != nil {
		if best.Scored {
			fmt.Fprintf(os.Stderr, "\nBest attempt: iteration %d (score %.2f), outcome: %s\n", best.Iteration, best.Score, sess.Outcome)
		} else {
			fmt.Fprintf(os.Stderr, "\nBest attempt: iteration %d (unscored), outcome: %s\n", best.Iteration, sess.Outcome)
		}
	}
}

func writeOutput(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(improveCmd)

	improveCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file with English text (required)")
	improveCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for the Russian translation (required)")

	improveCmd.Flags().Int("iterations", session.DefaultMaxIterations, "Maximum improvement iterations")
	improveCmd.Flags().Float64("threshold", session.DefaultThreshold, "Similarity score that stops iteration early")
	improveCmd.Flags().Duration("step-timeout", 60*time.Second, "Timeout per external call (0 = none)")
	improveCmd.Flags().Int("max-chunk", 0, "Split input into chunks of at most this many characters (0 = no splitting)")

	improveCmd.Flags().String("translator", "google", "Translation backend (google, ollama, mymemory)")
	improveCmd.Flags().StringP("credentials", "c", "", "Path to Google Cloud credentials")
	improveCmd.Flags().String("ollama-url", "http://localhost:11434", "Ollama base URL")
	improveCmd.Flags().String("ollama-model", "", "Ollama model for translation")
	improveCmd.Flags().String("mymemory-email", "", "MyMemory email (for higher limits)")

	improveCmd.Flags().String("assessor", "gigachat", "Assessor backend (gigachat, ollama, none)")
	improveCmd.Flags().String("assessor-model", "", "Assessor model name")
	improveCmd.Flags().String("improver", "gigachat", "Improver backend (gigachat, ollama, none)")
	improveCmd.Flags().String("improver-model", "", "Improver model name")
	improveCmd.Flags().String("gigachat-token", "", "GigaChat access token (or GIGACHAT_TOKEN)")
	improveCmd.Flags().String("gigachat-url", "", "GigaChat base URL override")

	improveCmd.Flags().String("db", "./data/obratno.db", "Database path for session history")
	improveCmd.Flags().BoolVar(&noCache, "no-cache", false, "Ignore previously improved translations")
	improveCmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record sessions in the history database")

	viper.BindPFlags(improveCmd.Flags())

	improveCmd.MarkFlagRequired("input")
	improveCmd.MarkFlagRequired("output")
}

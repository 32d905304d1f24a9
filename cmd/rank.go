package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/document"
	"github.com/spigell/resume-ranker/internal/filtering"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/reference"
)

const (
	PromptBack                = "back"
	PromptAppendToExcludeFile = "Append all ranked resumes to exclude file"
	PromptBatchToFile         = "Dump ranking to file"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the resume PDFs of a folder",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("folder", "f", "", "folder with resume PDFs")
	rankCmd.Flags().StringP("job-desc", "r", "", "job description file. Without it resumes are ranked by skills only")
	rankCmd.Flags().String("job-desc-text", "", "inline job description, used when --job-desc is not set")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with resumes to exclude. Default is unset.")
	rankCmd.Flags().Bool("dump", false, "dump the ranked batch to a temporary json file")
	rankCmd.Flags().BoolP("interactive", "i", false, "browse the ranked resumes interactively")
	rankCmd.Flags().Bool("exclude-ranked", false, "append every ranked resume to the exclude file")

	rankCmd.MarkFlagRequired("folder")

	viper.BindPFlag("exclude-file", rankCmd.Flags().Lookup("exclude-file"))
}

type rankOptions struct {
	Folder      string
	JobDescFile string
	JobDescText string
	ExcludeFile string
}

// rank is the folder mode command.
func rank(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-ranker", zap.String("version", version))

	engine, err := newEngine(config, logger)
	if err != nil {
		logger.Fatal("building the ranking engine", zap.Error(err))
	}

	opts := rankOptions{
		Folder:      cmd.Flag("folder").Value.String(),
		JobDescFile: cmd.Flag("job-desc").Value.String(),
		JobDescText: cmd.Flag("job-desc-text").Value.String(),
		ExcludeFile: config.ExcludeFile,
	}

	batch, err := rankFolder(ctx, engine, opts, logger)
	if err != nil {
		if errors.Is(err, reference.ErrReferenceFileNotFound) {
			logger.Fatal("job description is missing", zap.Error(err), zap.String("hint", "check the --job-desc path"))
		}
		logger.Fatal("ranking failed", zap.Error(err))
	}

	printTuples(cmd.OutOrStdout(), batch)

	if batch.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes ranked"))
		return
	}

	if flagSet(cmd, "dump") {
		if err := dumpBatch(batch, logger); err != nil {
			logger.Fatal("dumping the ranking", zap.Error(err))
		}
	}

	if flagSet(cmd, "exclude-ranked") {
		if err := appendToExcludeFile(opts.ExcludeFile, batch, logger); err != nil {
			logger.Fatal("updating the exclude file", zap.Error(err))
		}
	}

	if flagSet(cmd, "interactive") {
		if err := browse(cmd.OutOrStdout(), batch, opts.ExcludeFile, logger); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// rankFolder loads the job description before touching the folder, so a
// missing reference fails fast.
func rankFolder(ctx context.Context, engine *ranking.Engine, opts rankOptions, log *zap.Logger) (*ranking.Batch, error) {
	var jobDesc *string
	if opts.JobDescFile != "" || opts.JobDescText != "" {
		text, err := reference.Load(reference.Source{
			Name:  "job description",
			Value: opts.JobDescText,
			File:  opts.JobDescFile,
		})
		if err != nil {
			return nil, err
		}
		jobDesc = &text
	}

	docs, err := document.ReadDir(opts.Folder, log)
	if err != nil {
		return nil, err
	}

	log.Info("documents found", zap.String("folder", opts.Folder), zap.Int("count", docs.Len()))
	log.Debug("documents to filter", zap.Strings("filenames", docs.Names()))

	steps := filtering.Default()
	if opts.ExcludeFile == "" {
		filtering.DisableByName(steps, "exclude_file", "not configured")
	}
	log.Debug("filter steps", zap.Any("steps", filtering.Describe(steps)))

	docs, err = filtering.Run(ctx, &filtering.Config{ExcludeFile: opts.ExcludeFile}, filtering.Deps{Logger: log}, steps, docs)
	if err != nil {
		return nil, fmt.Errorf("filtering documents: %w", err)
	}

	return engine.Rank(ctx, docs, jobDesc)
}

func printTuples(w io.Writer, batch *ranking.Batch) {
	for _, tuple := range batch.Tuples() {
		fmt.Fprintln(w, tuple.String())
	}
}

func flagSet(cmd *cobra.Command, name string) bool {
	flag := cmd.Flag(name)
	return flag != nil && strings.EqualFold(flag.Value.String(), "true")
}

func dumpBatch(batch *ranking.Batch, log *zap.Logger) error {
	filename, err := batch.DumpToTmpFile()
	if err != nil {
		return fmt.Errorf("dump results to file: %w", err)
	}
	log.Info("dumping result to file", zap.String("filename", filename))
	return nil
}

func toExcluded(batch *ranking.Batch, now time.Time) *document.ExcludedDocuments {
	excluded := &document.ExcludedDocuments{}
	for _, record := range batch.Records {
		excluded.Items = append(excluded.Items, &document.ExcludedDocument{
			Filename:   record.SourceFilename,
			Score:      record.CompositeScore,
			ExcludedAt: now,
		})
	}
	return excluded
}

func appendToExcludeFile(path string, batch *ranking.Batch, log *zap.Logger) error {
	if path == "" {
		return errors.New("exclude file is not configured, set --exclude-file")
	}

	excluded, err := document.ReadExcludedFile(path)
	if err != nil {
		return err
	}

	excluded.Append(toExcluded(batch, time.Now().UTC()))

	if err := excluded.WriteFile(path); err != nil {
		return err
	}

	log.Info("appended to exclude file", zap.String("filename", path), zap.Int("count", batch.Len()))
	return nil
}

// browse lets the user pick ranked resumes and prints their details.
func browse(w io.Writer, batch *ranking.Batch, excludeFile string, log *zap.Logger) error {
	for {
		items := make([]string, 0, batch.Len()+3)
		for i, record := range batch.Records {
			items = append(items, fmt.Sprintf("%d. %s / %s / %.2f", i+1, record.SourceFilename, record.DisplayName, record.CompositeScore))
		}
		if excludeFile != "" {
			items = append(items, PromptAppendToExcludeFile)
		}
		items = append(items, PromptBatchToFile, PromptBack)

		resumePrompt := promptui.Select{
			Label: "Choose a resume and press ENTER",
			Items: items,
			Size:  10,
		}

		index, selected, err := resumePrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		switch selected {
		case PromptBack:
			return nil
		case PromptAppendToExcludeFile:
			if err := appendToExcludeFile(excludeFile, batch, log); err != nil {
				return err
			}
		case PromptBatchToFile:
			if err := dumpBatch(batch, log); err != nil {
				return err
			}
		default:
			printRecord(w, batch.Records[index])
		}
	}
}

func printRecord(w io.Writer, record *ranking.Record) {
	fmt.Fprintf(w, "name:             %s\n", record.DisplayName)
	fmt.Fprintf(w, "filename:         %s\n", record.SourceFilename)
	fmt.Fprintf(w, "score:            %.2f\n", record.CompositeScore)
	if record.Similarity != nil {
		fmt.Fprintf(w, "similarity:       %.4f\n", *record.Similarity)
	}
	row := (&ranking.Batch{Records: []*ranking.Record{record}}).Display()[0]
	fmt.Fprintf(w, "technical skills: %s\n", row.TechnicalSkills)
	fmt.Fprintf(w, "soft skills:      %s\n", row.SoftSkills)
}

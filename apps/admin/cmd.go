package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/trezcool/alama/core/advisory"
	"github.com/trezcool/alama/core/grading"
	"github.com/trezcool/alama/core/performance"
	"github.com/trezcool/alama/core/prediction"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp       = errors.New("help provided")
	errNoDatabase = errors.New("no database configured")
)

type commandLine struct {
	db            *sql.DB // nil when running in memory
	predictionSvc *advisory.Service
	validate      *validator.Validate
	translator    ut.Translator
	out           io.Writer
}

func (cl *commandLine) newApp() *cli.App {
	fileFlag := &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "path to the JSON input",
		Required: true,
	}

	return &cli.App{
		Name:            "admin",
		Usage:           "Alama administration tasks",
		HideVersion:     true,
		Writer:          cl.out,
		ExitErrHandler:  func(*cli.Context, error) {}, // errors are reported by main
		HideHelpCommand: true,
		Commands: []*cli.Command{
			{
				Name:            "migrate",
				Usage:           "run goose migration commands against the database",
				ArgsUsage:       "COMMAND [ARGS...]",
				SkipFlagParsing: true,
				Action:          cl.migrate,
			},
			{
				Name:  "predict",
				Usage: "predict the final grade of a student",
				Flags: []cli.Flag{
					fileFlag,
					&cli.StringFlag{Name: "student", Usage: "student ID the report is saved for"},
					&cli.StringFlag{Name: "subject", Usage: "subject the report is saved for"},
					&cli.BoolFlag{Name: "save", Usage: "save the report (requires --student and --subject)"},
				},
				Action: cl.predict,
			},
			{
				Name:   "outlook",
				Usage:  "compute the GPA-scale outlook of a student",
				Flags:  []cli.Flag{fileFlag},
				Action: cl.outlook,
			},
			{
				Name:   "cgpa",
				Usage:  "compute a CGPA from a list of courses",
				Flags:  []cli.Flag{fileFlag},
				Action: cl.cgpa,
			},
			{
				Name:  "results",
				Usage: "check an uploaded result sheet",
				Flags: []cli.Flag{
					fileFlag,
					&cli.BoolFlag{Name: "fix", Usage: "also print the auto-fixed rows"},
				},
				Action: cl.results,
			},
		},
	}
}

func (cl *commandLine) run(args []string) error {
	if len(args) < 2 {
		_ = cl.newApp().Run([]string{"admin", "--help"})
		return errHelp
	}
	return cl.newApp().Run(args)
}

func (cl *commandLine) predict(c *cli.Context) error {
	var in prediction.Input
	if err := readJSON(c.String("file"), &in); err != nil {
		return err
	}

	if !c.Bool("save") {
		if err := in.Validate(cl.validate); err != nil {
			return cl.validationError(err)
		}
		return cl.printJSON(cl.predictionSvc.Preview(in))
	}

	np := advisory.NewPrediction{
		StudentID: c.String("student"),
		Subject:   c.String("subject"),
		Input:     in,
	}
	if err := np.Validate(cl.validate); err != nil {
		return cl.validationError(err)
	}
	rec, err := cl.predictionSvc.Predict(c.Context, np)
	if err != nil {
		return errors.Wrap(err, "saving prediction")
	}
	return cl.printJSON(rec)
}

func (cl *commandLine) outlook(c *cli.Context) error {
	var snap performance.Snapshot
	if err := readJSON(c.String("file"), &snap); err != nil {
		return err
	}
	if err := cl.validate.Struct(&snap); err != nil {
		return cl.validationError(err)
	}
	return cl.printJSON(cl.predictionSvc.Outlook(snap))
}

func (cl *commandLine) cgpa(c *cli.Context) error {
	var transcript grading.Transcript
	if err := readJSON(c.String("file"), &transcript); err != nil {
		return err
	}
	if err := transcript.Validate(cl.validate); err != nil {
		return cl.validationError(err)
	}
	return cl.printJSON(grading.ComputeCGPA(transcript.Courses))
}

func (cl *commandLine) results(c *cli.Context) error {
	var rows []grading.ResultRow
	if err := readJSON(c.String("file"), &rows); err != nil {
		return err
	}

	if c.Bool("fix") {
		return cl.printJSON(grading.AutoFix(rows))
	}
	for _, rowErr := range grading.ValidateResults(rows) {
		if _, err := fmt.Fprintln(cl.out, rowErr.Error()); err != nil {
			return err
		}
	}
	return nil
}

// printJSON writes `v` to the output, indented when a human is reading it.
func (cl *commandLine) printJSON(v interface{}) error {
	var data []byte
	var err error
	if isTerminalFunc(int(os.Stdout.Fd())) {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return errors.Wrap(err, "encoding output")
	}
	_, err = fmt.Fprintln(cl.out, string(data))
	return err
}

// validationError flattens validator errors into a single, sorted message.
func (cl *commandLine) validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+": "+fe.Translate(cl.translator))
	}
	sort.Strings(msgs)
	return errors.Errorf("invalid input: %s", strings.Join(msgs, "; "))
}

func readJSON(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer f.Close()

	if err = json.NewDecoder(f).Decode(v); err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}
	return nil
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ppiankov/argcoder/internal/catalog"
	"github.com/ppiankov/argcoder/internal/model"
	"github.com/ppiankov/argcoder/internal/session"
)

// coder drives one interactive pass over a session. All terminal I/O
// goes through in/out so tests can script a whole session.
type coder struct {
	sess *session.Session
	cat  *catalog.Catalog
	in   *bufio.Scanner
	out  io.Writer

	coderName string
	variable  model.Variable

	// drafts holds answers that failed validation, keyed by coding_id,
	// so a retry re-offers them as defaults. The map is tied to the
	// session's form epoch: a resume invalidates every draft.
	drafts     map[string]model.CodingRecord
	draftEpoch int
}

func newCoder(sess *session.Session, cat *catalog.Catalog, in io.Reader, out io.Writer) *coder {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)
	return &coder{
		sess:       sess,
		cat:        cat,
		in:         scanner,
		out:        out,
		drafts:     make(map[string]model.CodingRecord),
		draftEpoch: sess.FormEpoch(),
	}
}

// errInputClosed signals the answer stream ended; treated as quit.
var errInputClosed = errors.New("input closed")

// run executes the session loop until the items run out, the coder
// quits, or the input ends.
func (c *coder) run() error {
	if err := c.resolveIdentity(); err != nil {
		if errors.Is(err, errInputClosed) {
			return nil
		}
		return err
	}

	for {
		item, ok := c.sess.Current()
		if !ok {
			p := c.sess.Progress()
			fmt.Fprintf(c.out, "\nAll arguments have been reviewed! Total coded: %d / %d\n", p.Coded, p.Total)
			return nil
		}

		c.showItem(item)

		line, err := c.readLine("[s]ave  s[k]ip  [p]rev  [j]ump N  [q]uit > ")
		if err != nil {
			return nil // input exhausted, export what we have
		}

		fields := strings.Fields(strings.ToLower(line))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "s", "save":
			c.save(item)
		case "k", "skip":
			if !c.sess.Skip() {
				fmt.Fprintln(c.out, "Already at the last argument.")
			}
		case "p", "prev", "previous":
			if err := c.sess.Retreat(); err != nil {
				fmt.Fprintf(c.out, "Cannot go back: %v\n", err)
			}
		case "j", "jump":
			if len(fields) < 2 {
				fmt.Fprintln(c.out, "Usage: jump N")
				continue
			}
			target, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Fprintf(c.out, "Not a position: %q\n", fields[1])
				continue
			}
			if err := c.sess.Jump(target); err != nil {
				fmt.Fprintf(c.out, "Cannot jump: %v\n", err)
			}
		case "q", "quit":
			return nil
		default:
			fmt.Fprintln(c.out, "Commands: save, skip, prev, jump N, quit")
		}
	}
}

// resolveIdentity settles the coder name and variable before the first
// item. Values locked by a resume win over flags and prompts.
func (c *coder) resolveIdentity() error {
	if locked := c.sess.LockedCoder(); locked != "" {
		if c.coderName != "" && c.coderName != locked {
			fmt.Fprintf(c.out, "Coder name is locked to %q by the resumed session.\n", locked)
		}
		c.coderName = locked
	}
	if locked := c.sess.LockedVariable(); locked != "" {
		if c.variable != "" && c.variable != locked {
			fmt.Fprintf(c.out, "Variable is locked to %s by the resumed session.\n", locked)
		}
		c.variable = locked
	}

	for c.coderName == "" {
		name, err := c.readLine("Your name: ")
		if err != nil {
			return err
		}
		c.coderName = strings.TrimSpace(name)
	}

	if c.variable == "" {
		options := make([]string, len(model.Variables))
		for i, v := range model.Variables {
			options[i] = string(v)
		}
		choice, err := c.promptSelect("Economic variable", options, string(model.Variables[0]))
		if err != nil {
			return err
		}
		c.variable = model.Variable(choice)
	}

	return nil
}

// save prompts the full form for item and commits the result. A record
// that fails validation stays around as a draft for the next attempt.
func (c *coder) save(item model.CodingItem) {
	rec, err := c.promptRecord(item)
	if err != nil {
		return // input ended mid-form; nothing to commit
	}

	total, err := c.sess.Commit(rec)
	if err != nil {
		c.stashDraft(rec)
		fmt.Fprintf(c.out, "Not saved: %v\n", err)
		return
	}

	delete(c.drafts, item.CodingID)
	fmt.Fprintf(c.out, "Saved! (%d total)\n", total)
	c.sess.Advance()
}

// promptRecord walks the conditional form for one item. Defaults come
// from the current draft or the previously committed record.
func (c *coder) promptRecord(item model.CodingItem) (model.CodingRecord, error) {
	prev := c.defaultsFor(item.CodingID)

	rec := model.CodingRecord{
		CodingID:  item.CodingID,
		CoderName: c.coderName,
		Variable:  c.variable,
	}

	score, err := c.promptScore(prev.Score)
	if err != nil {
		return rec, err
	}
	rec.Score = score

	citesData, err := c.promptYesNo("Does the speaker cite specific data or information?", prev.CitesData)
	if err != nil {
		return rec, err
	}
	rec.CitesData = citesData

	if rec.CitesData {
		cats, err := c.promptMultiSelect("Data source categories (check all that apply)", c.cat.DataOptions(), prev.DataCategories)
		if err != nil {
			return rec, err
		}
		rec.DataCategories = cats

		if rec.HasDataCategory(model.OtherCategory) {
			text, err := c.promptText("Describe the data source", prev.DataCategoryOther)
			if err != nil {
				return rec, err
			}
			rec.DataCategoryOther = text
		}

		infoOptions := make([]string, len(model.InformationTypes))
		for i, t := range model.InformationTypes {
			infoOptions[i] = string(t)
		}
		infoDefault := string(prev.InformationType)
		if infoDefault == "" {
			infoDefault = string(model.InformationPublic)
		}
		info, err := c.promptSelect("Information type", infoOptions, infoDefault)
		if err != nil {
			return rec, err
		}
		rec.InformationType = model.InformationType(info)
	}

	argOptions := c.cat.ArgumentOptions(c.variable)
	argDefault := prev.ArgumentCategory
	if argDefault == "" {
		argDefault = argOptions[0]
	}
	argCat, err := c.promptSelect("Macroeconomic category", argOptions, argDefault)
	if err != nil {
		return rec, err
	}
	rec.ArgumentCategory = argCat

	if rec.ArgumentCategory == model.OtherCategory {
		text, err := c.promptText("Describe why no category fits", prev.ArgumentCategoryOther)
		if err != nil {
			return rec, err
		}
		rec.ArgumentCategoryOther = text
	}

	notes, err := c.promptText("Additional notes (optional)", prev.Notes)
	if err != nil {
		return rec, err
	}
	rec.Notes = notes

	return rec, nil
}

// defaultsFor returns the form defaults for an item, discarding drafts
// from a superseded form epoch.
func (c *coder) defaultsFor(codingID string) model.CodingRecord {
	if c.draftEpoch != c.sess.FormEpoch() {
		c.drafts = make(map[string]model.CodingRecord)
		c.draftEpoch = c.sess.FormEpoch()
	}
	if draft, ok := c.drafts[codingID]; ok {
		return draft
	}
	if rec, ok := c.sess.Record(codingID); ok {
		return rec
	}
	return model.CodingRecord{}
}

func (c *coder) stashDraft(rec model.CodingRecord) {
	if c.draftEpoch != c.sess.FormEpoch() {
		c.drafts = make(map[string]model.CodingRecord)
		c.draftEpoch = c.sess.FormEpoch()
	}
	c.drafts[rec.CodingID] = rec
}

// showItem prints the quotation block and coding context for the item
// under the cursor.
func (c *coder) showItem(item model.CodingItem) {
	p := c.sess.Progress()
	fmt.Fprintf(c.out, "\n--- Argument %d of %d (%s) --- coded %d/%d ---\n",
		p.Position+1, p.Total, item.CodingID, p.Coded, p.Total)

	if c.sess.Coded(item.CodingID) {
		fmt.Fprintln(c.out, "Already coded - saving again replaces the previous record.")
	}

	fmt.Fprintf(c.out, "\n%s\n", item.Quotation)
	if item.Description != "" {
		fmt.Fprintf(c.out, "\nDescription: %s\n", item.Description)
	}
	if item.Explanation != "" {
		fmt.Fprintf(c.out, "\nExplanation: %s\n", item.Explanation)
	}
	fmt.Fprintln(c.out)
}

// readLine prints a prompt and reads one answer line.
func (c *coder) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// promptScore reads an integer score in [-3, +3]; empty keeps def.
func (c *coder) promptScore(def int) (int, error) {
	for {
		line, err := c.readLine(fmt.Sprintf("%s outlook score, %d..+%d [%d]: ", c.variable, model.MinScore, model.MaxScore, def))
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < model.MinScore || n > model.MaxScore {
			fmt.Fprintf(c.out, "Enter an integer between %d and %d.\n", model.MinScore, model.MaxScore)
			continue
		}
		return n, nil
	}
}

// promptYesNo reads a yes/no answer; empty keeps def.
func (c *coder) promptYesNo(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		line, err := c.readLine(fmt.Sprintf("%s [%s]: ", label, hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(c.out, "Answer yes or no.")
	}
}

// promptSelect reads a single choice from a numbered option list; empty
// keeps def.
func (c *coder) promptSelect(label string, options []string, def string) (string, error) {
	fmt.Fprintf(c.out, "%s:\n", label)
	for i, opt := range options {
		marker := " "
		if opt == def {
			marker = "*"
		}
		fmt.Fprintf(c.out, " %s%2d. %s\n", marker, i+1, opt)
	}

	for {
		line, err := c.readLine(fmt.Sprintf("Choice [1-%d]: ", len(options)))
		if err != nil {
			return "", err
		}
		if line == "" && def != "" {
			return def, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintf(c.out, "Enter a number between 1 and %d.\n", len(options))
			continue
		}
		return options[n-1], nil
	}
}

// promptMultiSelect reads a comma-separated set of choices; empty keeps
// the default selection, "-" clears it.
func (c *coder) promptMultiSelect(label string, options []string, def []string) ([]string, error) {
	selected := make(map[string]bool, len(def))
	for _, d := range def {
		selected[d] = true
	}

	fmt.Fprintf(c.out, "%s:\n", label)
	for i, opt := range options {
		marker := " "
		if selected[opt] {
			marker = "*"
		}
		fmt.Fprintf(c.out, " %s%2d. %s\n", marker, i+1, opt)
	}

	for {
		line, err := c.readLine("Selections (e.g. 1,3) [keep marked, - for none]: ")
		if err != nil {
			return nil, err
		}
		if line == "" {
			// Keep defaults, in option order
			var kept []string
			for _, opt := range options {
				if selected[opt] {
					kept = append(kept, opt)
				}
			}
			return kept, nil
		}
		if line == "-" {
			return nil, nil
		}

		var picked []string
		valid := true
		chosen := make(map[int]bool)
		for _, part := range strings.Split(line, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 1 || n > len(options) {
				fmt.Fprintf(c.out, "Enter numbers between 1 and %d, comma separated.\n", len(options))
				valid = false
				break
			}
			chosen[n-1] = true
		}
		if !valid {
			continue
		}
		for i, opt := range options {
			if chosen[i] {
				picked = append(picked, opt)
			}
		}
		return picked, nil
	}
}

// promptText reads a free-text answer; empty keeps def, "-" clears it.
func (c *coder) promptText(label, def string) (string, error) {
	prompt := label + ": "
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, def)
	}
	line, err := c.readLine(prompt)
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	if line == "-" {
		return "", nil
	}
	return line, nil
}

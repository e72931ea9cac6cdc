package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// fieldSeparator joins note fields in the notes.flds column
const fieldSeparator = "\x1f"

// APKGGenerator creates Anki package files (.apkg)
type APKGGenerator struct {
	deckName string
	deckID   int64
	modelID  int64
	cards    []Card
	media    map[string]string // card audio path -> media name inside the package
}

// NewAPKGGenerator creates a new APKG generator
func NewAPKGGenerator(deckName string) *APKGGenerator {
	now := time.Now().UnixMilli()
	return &APKGGenerator{
		deckName: deckName,
		deckID:   now,
		modelID:  now + 1,
		media:    make(map[string]string),
	}
}

// AddCard adds a card to the package
func (g *APKGGenerator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GenerateAPKG writes the package to outputPath
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "vaani_apkg_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Media first: the note fields refer to the media names
	mapping, err := g.copyMedia(tempDir)
	if err != nil {
		return fmt.Errorf("failed to copy media files: %w", err)
	}
	data, err := json.Marshal(mapping)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(tempDir, "media"), data, 0644); err != nil {
		return fmt.Errorf("failed to write media mapping: %w", err)
	}

	if err := g.createDatabase(filepath.Join(tempDir, "collection.anki2")); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := zipDirectory(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}
	return nil
}

// copyMedia copies every existing audio file into dir under a numeric name
// and returns the number -> filename mapping Anki expects
func (g *APKGGenerator) copyMedia(dir string) (map[string]string, error) {
	mapping := make(map[string]string)
	n := 0
	for _, card := range g.cards {
		if card.AudioFile == "" || g.media[card.AudioFile] != "" {
			continue
		}
		if _, err := os.Stat(card.AudioFile); err != nil {
			continue
		}

		name := MediaName(card.AudioFile)
		if err := copyFile(card.AudioFile, filepath.Join(dir, strconv.Itoa(n))); err != nil {
			return nil, fmt.Errorf("%s: %w", card.AudioFile, err)
		}
		mapping[strconv.Itoa(n)] = name
		g.media[card.AudioFile] = name
		n++
	}
	return mapping, nil
}

func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := g.insertNotes(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}
	return nil
}

var schema = []string{
	`CREATE TABLE col (id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
		scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL, usn integer NOT NULL,
		ls integer NOT NULL, conf text NOT NULL, models text NOT NULL, decks text NOT NULL,
		dconf text NOT NULL, tags text NOT NULL)`,
	`CREATE TABLE notes (id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
		mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL, flds text NOT NULL,
		sfld text NOT NULL, csum integer NOT NULL, flags integer NOT NULL, data text NOT NULL)`,
	`CREATE TABLE cards (id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
		ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL, type integer NOT NULL,
		queue integer NOT NULL, due integer NOT NULL, ivl integer NOT NULL, factor integer NOT NULL,
		reps integer NOT NULL, lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
		odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL)`,
	`CREATE TABLE revlog (id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
		ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL, factor integer NOT NULL,
		time integer NOT NULL, type integer NOT NULL)`,
	`CREATE TABLE graves (usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL)`,
	`CREATE INDEX ix_notes_csum ON notes (csum)`,
	`CREATE INDEX ix_cards_nid ON cards (nid)`,
	`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
	`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
}

type deck struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Mod       int64  `json:"mod"`
	Desc      string `json:"desc"`
	Dyn       int    `json:"dyn"`
	Conf      int    `json:"conf"`
	Usn       int    `json:"usn"`
	NewToday  [2]int `json:"newToday"`
	RevToday  [2]int `json:"revToday"`
	LrnToday  [2]int `json:"lrnToday"`
	TimeToday [2]int `json:"timeToday"`
	Collapsed bool   `json:"collapsed"`
	ExtendNew int    `json:"extendNew"`
	ExtendRev int    `json:"extendRev"`
}

type field struct {
	Name  string   `json:"name"`
	Ord   int      `json:"ord"`
	Font  string   `json:"font"`
	Size  int      `json:"size"`
	RTL   bool     `json:"rtl"`
	Media []string `json:"media"`
}

type template struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
	Qfmt string `json:"qfmt"`
	Afmt string `json:"afmt"`
}

type noteType struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Type      int             `json:"type"`
	Mod       int64           `json:"mod"`
	Usn       int             `json:"usn"`
	Sortf     int             `json:"sortf"`
	Did       int64           `json:"did"`
	Req       [][]interface{} `json:"req"`
	Tags      []string        `json:"tags"`
	Vers      []int           `json:"vers"`
	Flds      []field         `json:"flds"`
	Tmpls     []template      `json:"tmpls"`
	CSS       string          `json:"css"`
	LatexPre  string          `json:"latexPre"`
	LatexPost string          `json:"latexPost"`
}

const cardCSS = `.card { font-family: "Noto Sans Devanagari", sans-serif; font-size: 22px; text-align: center; }
.hindi { font-size: 34px; color: #2c3e50; }
.sanskrit { font-size: 34px; color: #8e3b12; }
.notes { font-size: 16px; color: #7f8c8d; margin-top: 20px; }`

func (g *APKGGenerator) noteType(now int64) noteType {
	fields := []string{"Hindi", "Sanskrit", "Audio", "Notes"}
	nt := noteType{
		ID:       g.modelID,
		Name:     "Hindi ↔ Sanskrit (vaani)",
		Mod:      now,
		Usn:      -1,
		Did:      g.deckID,
		Req:      [][]interface{}{{0, "all", []int{0}}, {1, "all", []int{1}}},
		Tags:     []string{},
		Vers:     []int{},
		CSS:      cardCSS,
		LatexPre: `\documentclass[12pt]{article}\begin{document}`,
		Tmpls: []template{
			{
				Name: "Hindi → Sanskrit",
				Ord:  0,
				Qfmt: `<div class="hindi">{{Hindi}}</div>`,
				Afmt: `{{FrontSide}}<hr id="answer"><div class="sanskrit">{{Sanskrit}}</div>{{Audio}}<div class="notes">{{Notes}}</div>`,
			},
			{
				Name: "Sanskrit → Hindi",
				Ord:  1,
				Qfmt: `<div class="sanskrit">{{Sanskrit}}</div>{{Audio}}`,
				Afmt: `{{FrontSide}}<hr id="answer"><div class="hindi">{{Hindi}}</div><div class="notes">{{Notes}}</div>`,
			},
		},
		LatexPost: `\end{document}`,
	}
	for i, name := range fields {
		nt.Flds = append(nt.Flds, field{Name: name, Ord: i, Font: "Arial", Size: 20, Media: []string{}})
	}
	return nt
}

func (g *APKGGenerator) insertCollection(db *sql.DB) error {
	now := time.Now().Unix()

	newDeck := func(id int64, name, desc string) deck {
		return deck{ID: id, Name: name, Mod: now, Desc: desc, Conf: 1, ExtendNew: 10, ExtendRev: 50}
	}
	decks := map[string]deck{"1": newDeck(1, "Default", "")}
	decks[strconv.FormatInt(g.deckID, 10)] = newDeck(g.deckID, g.deckName, "Hindi and Sanskrit cards exported by vaani")
	models := map[string]noteType{strconv.FormatInt(g.modelID, 10): g.noteType(now)}
	conf := map[string]interface{}{
		"nextPos": 1, "estTimes": true, "activeDecks": []int64{1}, "sortType": "noteFld",
		"sortBackwards": false, "addToCur": true, "curDeck": 1, "newSpread": 0, "dueCounts": true,
		"collapseTime": 1200, "timeLim": 0, "schedVer": 1, "curModel": strconv.FormatInt(g.modelID, 10),
	}
	dconf := map[string]interface{}{
		"1": map[string]interface{}{
			"id": 1, "name": "Default", "dyn": 0, "usn": 0, "mod": now, "autoplay": true, "replayq": true,
			"timer": 0, "maxTaken": 60,
			"new":   map[string]interface{}{"delays": []int{1, 10}, "ints": []int{1, 4, 7}, "initialFactor": 2500, "perDay": 20, "order": 1, "bury": true, "separate": true},
			"lapse": map[string]interface{}{"delays": []int{10}, "mult": 0, "minInt": 1, "leechFails": 8, "leechAction": 0},
			"rev":   map[string]interface{}{"perDay": 100, "ease4": 1.3, "fuzz": 0.05, "maxIvl": 36500, "ivlFct": 1, "bury": true, "minSpace": 1},
		},
	}

	blobs := make([]string, 0, 4)
	for _, v := range []interface{}{conf, models, decks, dconf} {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		blobs = append(blobs, string(data))
	}

	_, err := db.Exec(`INSERT INTO col VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		now, now*1000, now*1000, blobs[0], blobs[1], blobs[2], blobs[3])
	return err
}

func (g *APKGGenerator) insertNotes(db *sql.DB) error {
	now := time.Now()
	base := now.UnixMilli()

	for i, card := range g.cards {
		noteID := base + int64(i*3)

		audio := ""
		if name := g.media[card.AudioFile]; name != "" {
			audio = fmt.Sprintf("[sound:%s]", name)
		}
		flds := strings.Join([]string{card.Hindi, card.Sanskrit, audio, card.Notes}, fieldSeparator)

		_, err := db.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')`,
			noteID, noteGUID(card), g.modelID, now.Unix(), flds, card.Hindi, checksum(card.Hindi))
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		for ord := 0; ord < 2; ord++ {
			cardID := noteID + int64(ord) + 1
			_, err := db.Exec(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
				cardID, noteID, g.deckID, ord, now.Unix(), cardID)
			if err != nil {
				return fmt.Errorf("failed to insert card: %w", err)
			}
		}
	}
	return nil
}

// noteGUID is stable for a pair so re-imports update instead of duplicate
func noteGUID(card Card) string {
	sum := sha1.Sum([]byte(card.Hindi + fieldSeparator + card.Sanskrit))
	return "vaani_" + hex.EncodeToString(sum[:])[:16]
}

// checksum is Anki's csum: the first 8 hex digits of sha1(sort field)
func checksum(s string) int64 {
	sum := sha1.Sum([]byte(s))
	v, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return v
}

func zipDirectory(dir, outputPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	archive := zip.NewWriter(out)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w, err := archive.Create(entry.Name())
		if err != nil {
			return err
		}
		f, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		_, err = io.Copy(w, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return archive.Close()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

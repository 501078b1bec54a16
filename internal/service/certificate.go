package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/iliyamo/civil-registry/internal/model"
)

//go:embed templates/acte.html
var templateFS embed.FS

var acteTemplate = template.Must(template.New("acte.html").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	ParseFS(templateFS, "templates/acte.html"))

var moisFr = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// DateFr formats d as "02 juin 2024".
func DateFr(d model.Date) string {
	return fmt.Sprintf("%02d %s %d", d.Day(), moisFr[d.Month()-1], d.Year())
}

type conjointView struct {
	Class         string
	Titre         string
	Nom           string
	Ne            string
	DateNaissance string
	LieuNaissance string
	Nationalite   string
	Profession    string
	Adresse       string
	Filiation     string
	Pere          string
	Mere          string
}

type acteView struct {
	Numero    string
	Mairie    string
	Adresse   string
	Annee     int
	Date      string
	Heure     string
	Officier  string
	Fonction  string
	Conjoints []conjointView
	Temoins   []string
	Regime    string
}

func orDefault(v *string, def string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return def
	}
	return *v
}

func newConjointView(c model.Conjoint, femme bool) conjointView {
	v := conjointView{
		Class: "epoux", Titre: "L'ÉPOUX", Ne: "Né", Filiation: "Fils",
		Nom:           c.NomComplet(),
		DateNaissance: DateFr(c.DateNaissance),
		LieuNaissance: c.LieuNaissance,
		Nationalite:   orDefault(c.Nationalite, "Camerounaise"),
		Profession:    orDefault(c.Profession, "Non précisée"),
		Adresse:       orDefault(c.Adresse, "Non précisé"),
		Pere:          orDefault(c.NomPere, "Non précisé"),
		Mere:          orDefault(c.NomMere, "Non précisée"),
	}
	if femme {
		v.Class, v.Titre, v.Ne, v.Filiation = "epouse", "L'ÉPOUSE", "Née", "Fille"
	}
	return v
}

func temoin(prenom, nom *string) string {
	return strings.TrimSpace(orDefault(prenom, "") + " " + orDefault(nom, "Non précisé"))
}

// RenderActe renders the HTML body of a marriage certificate.
func RenderActe(m *model.Mariage, mairie *model.Mairie, numero string) (string, error) {
	view := acteView{
		Numero:   numero,
		Mairie:   mairie.Nom,
		Adresse:  orDefault(mairie.Adresse, ""),
		Annee:    m.DateMariage.Year(),
		Date:     DateFr(m.DateMariage),
		Heure:    orDefault(m.HeureMariage, "10h00"),
		Officier: orDefault(m.OfficierNom, "L'Officier d'État Civil"),
		Fonction: orDefault(m.OfficierFonction, "Officier d'État Civil"),
		Conjoints: []conjointView{
			newConjointView(m.Epoux, false),
			newConjointView(m.Epouse, true),
		},
		Temoins: []string{
			temoin(m.Temoin1Prenom, m.Temoin1Nom),
			temoin(m.Temoin2Prenom, m.Temoin2Nom),
		},
		Regime: m.RegimeMatrimonial,
	}
	var buf bytes.Buffer
	if err := acteTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render acte: %w", err)
	}
	return buf.String(), nil
}

package tree

import "github.com/banaszakw/dir-maker/internal/model"

// The templates below are fixed. Folder names are Polish: "poczatek" (start),
// "rozliczenia dla klienta" (client billing), "koniec" (end),
// "przygotowanie" (preparation).

// Basic is applied to every target folder.
var Basic = model.Template{
	Name: "basic",
	Kind: model.KindDirectory,
	Entries: []model.Entry{
		{"01_poczatek"},
		{"rozliczenia_dla_klienta"},
		{"90_koniec"},
	},
}

// Secondary holds the preparation directories, applied with --secondary.
var Secondary = model.Template{
	Name: "secondary",
	Kind: model.KindDirectory,
	Entries: []model.Entry{
		{"02_przygotowanie", "01_sdlxliff_orig"},
		{"02_przygotowanie", "02_sdlxliff_trans"},
	},
}

// SecondaryFiles are the placeholder PDFs created next to Secondary.
var SecondaryFiles = model.Template{
	Name: "secondary-files",
	Kind: model.KindFile,
	Entries: []model.Entry{
		{"02_przygotowanie", "01_DE.pdf"},
		{"02_przygotowanie", "02_DE-PL.pdf"},
		{"02_przygotowanie", "03_PL.pdf"},
	},
}

// NoPDF marks a folder whose source PDF is missing, applied with --no-pdf.
// "brak pliku PDF" means "no PDF file".
var NoPDF = model.Template{
	Name: "no-pdf",
	Kind: model.KindFile,
	Entries: []model.Entry{
		{"rozliczenia_dla_klienta", "brak_pliku_PDF.txt"},
	},
}

// All returns the fixed templates in the order the orchestrator applies them.
func All() []model.Template {
	return []model.Template{Basic, Secondary, SecondaryFiles, NoPDF}
}

// ForOrder returns the templates an order selects, in application order.
// Basic is always first; Secondary precedes SecondaryFiles so the parent
// directory of the placeholders exists before they are created.
func ForOrder(o model.Order) []model.Template {
	tpls := []model.Template{Basic}
	if o.MakeSecondary {
		tpls = append(tpls, Secondary, SecondaryFiles)
	}
	if o.MakePDFPlaceholder {
		tpls = append(tpls, NoPDF)
	}
	return tpls
}

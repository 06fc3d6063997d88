package locale

import "fmt"

// Label keys looked up through Formatter.Label.
const (
	LabelAvgPing  = "avg_ping"
	LabelPing     = "ping"
	LabelNA       = "n_a"
	LabelSamples  = "samples"
	LabelDegraded = "degraded"
	LabelDown     = "down"
	LabelAllTime  = "all_time"
	LabelUptime   = "uptime"
	LabelIssues   = "issues"
	LabelUp       = "status_up"
	LabelDegr     = "status_degraded"
	LabelOutage   = "status_down"
)

// table holds the strings and date shapes for one language.
type table struct {
	months   [12]string
	date     func(day int, month string, year int) string
	dayMonth func(day int, month string) string
	labels   map[string]string
}

var english = table{
	months:   [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	date:     func(d int, m string, y int) string { return fmt.Sprintf("%s %d, %d", m, d, y) },
	dayMonth: func(d int, m string) string { return fmt.Sprintf("%s %d", m, d) },
	labels: map[string]string{
		LabelAvgPing:  "avg ping",
		LabelPing:     "ping",
		LabelNA:       "N/A",
		LabelSamples:  "samples",
		LabelDegraded: "degraded",
		LabelDown:     "down",
		LabelAllTime:  "All time",
		LabelUptime:   "uptime",
		LabelIssues:   "issues",
		LabelUp:       "Up",
		LabelDegr:     "Degraded",
		LabelOutage:   "Down",
	},
}

var german = table{
	months:   [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
	date:     func(d int, m string, y int) string { return fmt.Sprintf("%d. %s %d", d, m, y) },
	dayMonth: func(d int, m string) string { return fmt.Sprintf("%d. %s", d, m) },
	labels: map[string]string{
		LabelAvgPing:  "Ø Ping",
		LabelPing:     "Ping",
		LabelNA:       "k. A.",
		LabelSamples:  "Messungen",
		LabelDegraded: "beeinträchtigt",
		LabelDown:     "ausgefallen",
		LabelAllTime:  "Gesamter Zeitraum",
		LabelUptime:   "Verfügbarkeit",
		LabelIssues:   "Probleme",
		LabelUp:       "Verfügbar",
		LabelDegr:     "Beeinträchtigt",
		LabelOutage:   "Ausgefallen",
	},
}

var french = table{
	months:   [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
	date:     func(d int, m string, y int) string { return fmt.Sprintf("%d %s %d", d, m, y) },
	dayMonth: func(d int, m string) string { return fmt.Sprintf("%d %s", d, m) },
	labels: map[string]string{
		LabelAvgPing:  "ping moyen",
		LabelPing:     "ping",
		LabelNA:       "N/D",
		LabelSamples:  "échantillons",
		LabelDegraded: "dégradés",
		LabelDown:     "en panne",
		LabelAllTime:  "Depuis le début",
		LabelUptime:   "disponibilité",
		LabelIssues:   "incidents",
		LabelUp:       "Opérationnel",
		LabelDegr:     "Dégradé",
		LabelOutage:   "Hors service",
	},
}

var spanish = table{
	months:   [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
	date:     func(d int, m string, y int) string { return fmt.Sprintf("%d %s %d", d, m, y) },
	dayMonth: func(d int, m string) string { return fmt.Sprintf("%d %s", d, m) },
	labels: map[string]string{
		LabelAvgPing:  "ping medio",
		LabelPing:     "ping",
		LabelNA:       "N/D",
		LabelSamples:  "muestras",
		LabelDegraded: "degradadas",
		LabelDown:     "caídas",
		LabelAllTime:  "Todo el periodo",
		LabelUptime:   "disponibilidad",
		LabelIssues:   "incidencias",
		LabelUp:       "Operativo",
		LabelDegr:     "Degradado",
		LabelOutage:   "Caído",
	},
}

package httpapi

import (
	"time"

	"github.com/fundacion-horas/horas-backend/internal/models"
)

// Wire names follow the original API contract consumed by the dashboard
// frontend, hence the Spanish field names.

type submitRecordRequest struct {
	Actividad         int64   `json:"actividad"`
	HorasReportadas   float64 `json:"horas_reportadas"`
	DescripcionManual string  `json:"descripcion_manual"`
}

type updateRecordRequest struct {
	HorasReportadas   float64 `json:"horas_reportadas"`
	DescripcionManual string  `json:"descripcion_manual"`
}

type decisionRequest struct {
	Accion string `json:"accion"`
	Nota   string `json:"nota"`
}

type recordView struct {
	ID                  int64   `json:"id"`
	Becario             int64   `json:"becario"`
	BecarioNombre       string  `json:"becario_nombre,omitempty"`
	Actividad           int64   `json:"actividad"`
	ActividadTitulo     string  `json:"actividad_titulo"`
	TipoActividad       string  `json:"tipo_actividad"`
	DescripcionManual   string  `json:"descripcion_manual"`
	HorasReportadas     float64 `json:"horas_reportadas"`
	EstadoAprobacion    string  `json:"estado_aprobacion"`
	FechaRegistro       string  `json:"fecha_registro"`
	FechaAprobacion     *string `json:"fecha_aprobacion"`
	AdministradorAprobo *string `json:"administrador_aprobo"`
	NotaDecision        string  `json:"nota_decision,omitempty"`
}

func toRecordView(r models.RecordWithDetails) recordView {
	v := recordView{
		ID:                r.ID,
		Becario:           r.BecarioID,
		BecarioNombre:     r.BecarioNombre,
		Actividad:         r.ActividadID,
		ActividadTitulo:   r.ActividadTitulo,
		TipoActividad:     string(r.ActividadTipo),
		DescripcionManual: r.Descripcion,
		HorasReportadas:   r.Horas,
		EstadoAprobacion:  string(r.Estado),
		FechaRegistro:     r.FechaRegistro.Format("2006-01-02"),
		NotaDecision:      r.NotaDecision,
	}
	if r.FechaAprobacion != nil {
		s := r.FechaAprobacion.Format(time.RFC3339)
		v.FechaAprobacion = &s
	}
	v.AdministradorAprobo = r.AprobadorNombre
	return v
}

func toRecordViews(rs []models.RecordWithDetails) []recordView {
	out := make([]recordView, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRecordView(r))
	}
	return out
}

type progressEntryView struct {
	TipoActividad   string  `json:"tipo_actividad"`
	HorasObjetivo   float64 `json:"horas_objetivo"`
	HorasAlcanzadas float64 `json:"horas_alcanzadas"`
	Porcentaje      float64 `json:"porcentaje"`
	HorasRestantes  float64 `json:"horas_restantes"`
}

func toProgressViews(entries []models.ProgressEntry) []progressEntryView {
	out := make([]progressEntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, progressEntryView{
			TipoActividad:   string(e.Tipo),
			HorasObjetivo:   e.HorasObjetivo,
			HorasAlcanzadas: e.HorasLogradas,
			Porcentaje:      e.Porcentaje,
			HorasRestantes:  e.HorasRestantes,
		})
	}
	return out
}

type fleetStatsView struct {
	TotalBecarios       int     `json:"total_becarios"`
	TotalHorasAprobadas float64 `json:"total_horas_aprobadas"`
}

type internProgressView struct {
	Becario                int64   `json:"becario"`
	BecarioNombre          string  `json:"becario_nombre"`
	HorasTotalesAprobadas  float64 `json:"horas_totales_aprobadas"`
	MetaTotal              float64 `json:"meta_total"`
	PorcentajeCumplimiento float64 `json:"porcentaje_cumplimiento"`
}

type fleetProgressView struct {
	EstadisticasGenerales fleetStatsView       `json:"estadisticas_generales"`
	ProgresoBecarios      []internProgressView `json:"progreso_becarios"`
}

func toFleetView(f models.FleetProgress) fleetProgressView {
	rows := make([]internProgressView, 0, len(f.Becarios))
	for _, b := range f.Becarios {
		rows = append(rows, internProgressView{
			Becario:                b.BecarioID,
			BecarioNombre:          b.BecarioNombre,
			HorasTotalesAprobadas:  b.HorasAprobadas,
			MetaTotal:              b.MetaTotal,
			PorcentajeCumplimiento: b.PorcentajeCumpl,
		})
	}
	return fleetProgressView{
		EstadisticasGenerales: fleetStatsView{
			TotalBecarios:       f.Stats.TotalBecarios,
			TotalHorasAprobadas: f.Stats.TotalHorasAprobadas,
		},
		ProgresoBecarios: rows,
	}
}

type activityRequest struct {
	Titulo        string  `json:"titulo"`
	Descripcion   string  `json:"descripcion"`
	Tipo          string  `json:"tipo"`
	Fecha         string  `json:"fecha"`
	DuracionHoras float64 `json:"duracion_horas"`
	Modalidad     string  `json:"modalidad"`
	Organizacion  string  `json:"organizacion"`
	Facilitador   string  `json:"facilitador"`
}

type activityView struct {
	ID            int64   `json:"id"`
	Titulo        string  `json:"titulo"`
	Descripcion   string  `json:"descripcion"`
	Tipo          string  `json:"tipo"`
	Fecha         string  `json:"fecha"`
	DuracionHoras float64 `json:"duracion_horas"`
	Modalidad     string  `json:"modalidad"`
	Organizacion  string  `json:"organizacion"`
	Facilitador   string  `json:"facilitador"`
	Creador       int64   `json:"creador"`
	EnCatalogo    bool    `json:"en_catalogo"`
	IsActive      bool    `json:"is_active"`
}

func toActivityView(a models.Activity) activityView {
	return activityView{
		ID:            a.ID,
		Titulo:        a.Titulo,
		Descripcion:   a.Descripcion,
		Tipo:          string(a.Tipo),
		Fecha:         a.Fecha.Format("2006-01-02"),
		DuracionHoras: a.DuracionHoras,
		Modalidad:     string(a.Modalidad),
		Organizacion:  a.Organizacion,
		Facilitador:   a.Facilitador,
		Creador:       a.CreadorID,
		EnCatalogo:    a.EnCatalogo,
		IsActive:      a.IsActive,
	}
}

func toActivityViews(as []models.Activity) []activityView {
	out := make([]activityView, 0, len(as))
	for _, a := range as {
		out = append(out, toActivityView(a))
	}
	return out
}

type createUserRequest struct {
	Email        string  `json:"email"`
	Nombre       string  `json:"nombre"`
	Rol          string  `json:"rol"`
	Carrera      string  `json:"carrera"`
	Universidad  string  `json:"universidad"`
	Semestre     string  `json:"semestre"`
	MetaInterna  float64 `json:"meta_horas_voluntariado_interno"`
	MetaExterna  float64 `json:"meta_horas_voluntariado_externo"`
	MetaChat     float64 `json:"meta_horas_chat_ingles"`
	MetaTalleres float64 `json:"meta_horas_talleres"`
}

type goalsRequest struct {
	MetaInterna  float64 `json:"meta_horas_voluntariado_interno"`
	MetaExterna  float64 `json:"meta_horas_voluntariado_externo"`
	MetaChat     float64 `json:"meta_horas_chat_ingles"`
	MetaTalleres float64 `json:"meta_horas_talleres"`
}

type userView struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Nombre       string  `json:"nombre"`
	Rol          string  `json:"rol"`
	Carrera      string  `json:"carrera"`
	Universidad  string  `json:"universidad"`
	Semestre     string  `json:"semestre"`
	MetaInterna  float64 `json:"meta_horas_voluntariado_interno"`
	MetaExterna  float64 `json:"meta_horas_voluntariado_externo"`
	MetaChat     float64 `json:"meta_horas_chat_ingles"`
	MetaTalleres float64 `json:"meta_horas_talleres"`
	IsActive     bool    `json:"is_active"`
}

func toUserView(u models.User) userView {
	return userView{
		ID:           u.ID,
		Email:        u.Email,
		Nombre:       u.Nombre,
		Rol:          string(u.Rol),
		Carrera:      u.Carrera,
		Universidad:  u.Universidad,
		Semestre:     u.Semestre,
		MetaInterna:  u.MetaInterna,
		MetaExterna:  u.MetaExterna,
		MetaChat:     u.MetaChat,
		MetaTalleres: u.MetaTalleres,
		IsActive:     u.IsActive,
	}
}

type assignUsersRequest struct {
	UserIDs []int64 `json:"user_ids"`
}

type assignActivitiesRequest struct {
	ActivityIDs []int64 `json:"activity_ids"`
}

type ackResponse struct {
	Message string `json:"message"`
}

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fundacion-horas/horas-backend/internal/models"
)

// SeedDemo fills an empty database with a demo administrator, a handful of
// interns with goals, and catalog activities for every category. Re-running
// is harmless: inserts key on email/titulo and skip existing rows.
func SeedDemo(ctx context.Context, database *sql.DB) error {
	var adminID int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO users (email, nombre, rol)
		VALUES ('admin@fundacion.org', 'Administración', 'administrador')
		ON CONFLICT (email) DO UPDATE SET nombre = EXCLUDED.nombre
		RETURNING id`).Scan(&adminID)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	for i := 1; i <= 5; i++ {
		_, err := database.ExecContext(ctx, `
			INSERT INTO users (email, nombre, rol, carrera, universidad, semestre,
				meta_voluntariado_interno, meta_voluntariado_externo, meta_chat_ingles, meta_talleres)
			VALUES ($1, $2, 'becario', 'Ingeniería', 'UNAM', $3, 20, 10, 15, 8)
			ON CONFLICT (email) DO NOTHING`,
			fmt.Sprintf("becario%d@fundacion.org", i),
			fmt.Sprintf("Becario %d", i),
			fmt.Sprintf("%d", 1+i%8))
		if err != nil {
			return fmt.Errorf("seed becario %d: %w", i, err)
		}
	}

	activities := []struct {
		titulo string
		tipo   models.Category
	}{
		{"Colecta anual", models.CategoryInterna},
		{"Reforestación urbana", models.CategoryExterna},
		{"Taller de liderazgo", models.CategoryTalleres},
		{"English chat: semana 1", models.CategoryChat},
	}
	fecha := time.Now().AddDate(0, 0, -7)
	for _, a := range activities {
		var exists bool
		if err := database.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM activities WHERE titulo = $1)`, a.titulo).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err := database.ExecContext(ctx, `
			INSERT INTO activities (titulo, tipo, fecha, duracion_horas, modalidad, creador_id, en_catalogo)
			VALUES ($1, $2, $3, 2, 'P', $4, TRUE)`,
			a.titulo, a.tipo, fecha, adminID)
		if err != nil {
			return fmt.Errorf("seed activity %q: %w", a.titulo, err)
		}
	}
	return nil
}

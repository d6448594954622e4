package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migration registra um arquivo SQL já aplicado
type Migration struct {
	ID        uint  `gorm:"primaryKey"`
	Version   int64 `gorm:"uniqueIndex"`
	Name      string
	AppliedAt time.Time
}

// TableName define o nome da tabela
func (Migration) TableName() string {
	return "schema_migrations"
}

// MigrationFile representa um arquivo de migração (formato: YYYYMMDDHHMMSS_nome.sql)
type MigrationFile struct {
	Version int64
	Name    string
	Path    string
}

// MigrationStatus informa se um arquivo já foi aplicado
type MigrationStatus struct {
	MigrationFile
	Applied   bool
	AppliedAt *time.Time
}

// MigrationManager gerencia migrações SQL versionadas
type MigrationManager struct {
	db        *gorm.DB
	logger    *zap.Logger
	directory string
}

// NewMigrationManager cria um novo gerenciador de migrações
func NewMigrationManager(db *gorm.DB, logger *zap.Logger, directory string) *MigrationManager {
	return &MigrationManager{
		db:        db,
		logger:    logger,
		directory: directory,
	}
}

// Initialize cria a tabela de controle se não existir
func (m *MigrationManager) Initialize(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&Migration{}); err != nil {
		return fmt.Errorf("falha ao criar tabela de migrações: %w", err)
	}
	return nil
}

func (m *MigrationManager) applied(ctx context.Context) (map[int64]Migration, error) {
	var rows []Migration
	if err := m.db.WithContext(ctx).Order("version").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("falha ao buscar migrações aplicadas: %w", err)
	}

	applied := make(map[int64]Migration, len(rows))
	for _, row := range rows {
		applied[row.Version] = row
	}
	return applied, nil
}

// ApplyMigrations aplica, em ordem de versão, os arquivos ainda não registrados.
// Cada arquivo roda em sua própria transação.
func (m *MigrationManager) ApplyMigrations(ctx context.Context) error {
	if err := m.Initialize(ctx); err != nil {
		return err
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}

	files, err := m.findMigrationFiles()
	if err != nil {
		return fmt.Errorf("falha ao listar arquivos de migração: %w", err)
	}
	if len(files) == 0 {
		m.logger.Info("Nenhum arquivo de migração encontrado", zap.String("dir", m.directory))
		return nil
	}

	for _, file := range files {
		if _, ok := applied[file.Version]; ok {
			m.logger.Debug("Migração já aplicada", zap.Int64("version", file.Version), zap.String("name", file.Name))
			continue
		}

		if err := m.apply(ctx, file); err != nil {
			return err
		}

		m.logger.Info("Migração aplicada com sucesso", zap.Int64("version", file.Version), zap.String("name", file.Name))
	}

	return nil
}

func (m *MigrationManager) apply(ctx context.Context, file MigrationFile) error {
	content, err := os.ReadFile(file.Path)
	if err != nil {
		return fmt.Errorf("falha ao ler arquivo de migração: %w", err)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cmd := range splitSQLCommands(string(content)) {
			if strings.TrimSpace(cmd) == "" {
				continue
			}
			if err := tx.Exec(cmd).Error; err != nil {
				return fmt.Errorf("falha ao executar migração %d_%s: %w", file.Version, file.Name, err)
			}
		}

		if err := tx.Create(&Migration{
			Version:   file.Version,
			Name:      file.Name,
			AppliedAt: time.Now().UTC(),
		}).Error; err != nil {
			return fmt.Errorf("falha ao registrar migração: %w", err)
		}
		return nil
	})
}

// Status lista todos os arquivos conhecidos e se já foram aplicados
func (m *MigrationManager) Status(ctx context.Context) ([]MigrationStatus, error) {
	if err := m.Initialize(ctx); err != nil {
		return nil, err
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	files, err := m.findMigrationFiles()
	if err != nil {
		return nil, err
	}

	status := make([]MigrationStatus, 0, len(files))
	for _, file := range files {
		s := MigrationStatus{MigrationFile: file}
		if row, ok := applied[file.Version]; ok {
			at := row.AppliedAt
			s.Applied = true
			s.AppliedAt = &at
		}
		status = append(status, s)
	}
	return status, nil
}

// splitSQLCommands divide o SQL por ponto e vírgula, ignorando os que estão em strings ou comentários
func splitSQLCommands(sql string) []string {
	var commands []string
	var current strings.Builder
	inString := false
	inLineComment := false
	inBlockComment := false

	for i := 0; i < len(sql); i++ {
		ch := sql[i]

		if !inString && !inBlockComment && !inLineComment && i < len(sql)-1 && ch == '-' && sql[i+1] == '-' {
			inLineComment = true
			current.WriteByte(ch)
			continue
		}

		if inLineComment && ch == '\n' {
			inLineComment = false
			current.WriteByte(ch)
			continue
		}

		if !inString && !inLineComment && !inBlockComment && i < len(sql)-1 && ch == '/' && sql[i+1] == '*' {
			inBlockComment = true
			current.WriteByte(ch)
			continue
		}

		if inBlockComment && i < len(sql)-1 && ch == '*' && sql[i+1] == '/' {
			inBlockComment = false
			current.WriteString("*/")
			i++
			continue
		}

		if !inLineComment && !inBlockComment && ch == '\'' {
			inString = !inString
		}

		if !inString && !inLineComment && !inBlockComment && ch == ';' {
			current.WriteByte(ch)
			if cmd := strings.TrimSpace(current.String()); !onlyComments(cmd) {
				commands = append(commands, cmd)
			}
			current.Reset()
			continue
		}

		current.WriteByte(ch)
	}

	if last := strings.TrimSpace(current.String()); last != "" && !onlyComments(last) {
		commands = append(commands, last)
	}

	return commands
}

// onlyComments indica se o trecho não tem nenhuma instrução além de comentários de linha
func onlyComments(cmd string) bool {
	for _, line := range strings.Split(cmd, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && line != ";" && !strings.HasPrefix(line, "--") {
			return false
		}
	}
	return true
}

// findMigrationFiles encontra os arquivos .sql do diretório, ordenados por versão.
// Diretório inexistente equivale a nenhuma migração.
func (m *MigrationManager) findMigrationFiles() ([]MigrationFile, error) {
	if m.directory == "" {
		return nil, nil
	}

	var files []MigrationFile
	err := filepath.WalkDir(m.directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".sql") {
			return nil
		}

		parts := strings.SplitN(d.Name(), "_", 2)
		if len(parts) != 2 {
			m.logger.Warn("Formato de arquivo de migração inválido", zap.String("file", d.Name()))
			return nil
		}

		version, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			m.logger.Warn("Versão de migração inválida", zap.String("file", d.Name()))
			return nil
		}

		files = append(files, MigrationFile{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			Path:    path,
		})
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Version < files[j].Version
	})
	return files, nil
}

// CreateMigration cria um novo arquivo de migração vazio e devolve seu caminho
func (m *MigrationManager) CreateMigration(name string) (string, error) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	if name == "" {
		return "", errors.New("nome da migração é obrigatório")
	}

	if err := os.MkdirAll(m.directory, 0o755); err != nil {
		return "", fmt.Errorf("falha ao criar diretório: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.sql", time.Now().UTC().Format("20060102150405"), name)
	path := filepath.Join(m.directory, filename)

	header := fmt.Sprintf("-- %s\n-- Criada em %s\n\n", name, time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(path, []byte(header), 0o644); err != nil {
		return "", fmt.Errorf("falha ao criar arquivo: %w", err)
	}

	return path, nil
}

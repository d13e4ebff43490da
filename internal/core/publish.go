package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/giantswarm/localdbenv/internal/msbuild"
	"github.com/giantswarm/localdbenv/internal/sentinel"
)

// Profile template placeholders, substituted in this order.
const (
	placeholderDatabaseName     = "{databaseName}"
	placeholderScriptName       = "{scriptName}"
	placeholderConnectionString = "{connectionString}"
)

// Build targets and the properties passed to the database project.
const (
	targetBuild   = "Build"
	targetPublish = "Publish"

	propTargetConnectionString = "TargetConnectionString"
	propOutDir                 = "OutDir"
	propSqlPublishProfilePath  = "SqlPublishProfilePath"
)

// ProfilePath returns where the publish profile for databaseName is written.
func (m *Manager) ProfilePath(databaseName string) string {
	return filepath.Join(m.cfg.BaseDir, databaseName+".publish.xml")
}

// BuildLogPath returns the build log file for databaseName.
func (m *Manager) BuildLogPath(databaseName string) string {
	return filepath.Join(m.cfg.BaseDir, databaseName+".msbuild.log")
}

// CreatePublishProfile generates {databaseName}.publish.xml in the base
// directory from the profile template and returns its path. Placeholders are
// replaced literally; nothing is escaped.
func (m *Manager) CreatePublishProfile(databaseName, connectionString string) (string, error) {
	if strings.TrimSpace(databaseName) == "" {
		return "", blankArgument("database name")
	}

	templatePath := filepath.Join(m.cfg.BaseDir, m.cfg.ProfileTemplateName)
	if !m.acc.FS.FileExists(templatePath) {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, templatePath)
	}
	text, err := m.acc.FS.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("read publish profile template: %w", err)
	}

	text = strings.ReplaceAll(text, placeholderDatabaseName, databaseName)
	text = strings.ReplaceAll(text, placeholderScriptName, databaseName+".sql")
	text = strings.ReplaceAll(text, placeholderConnectionString, connectionString)

	path := m.ProfilePath(databaseName)
	if err := m.acc.FS.WriteFile(path, text); err != nil {
		return "", fmt.Errorf("write publish profile: %w", err)
	}
	Logger().Debug("publish profile written", "path", path, "database", databaseName)
	return path, nil
}

// BuildAndPublishProject builds the database project at projectPath and
// publishes it as databaseName to the made instance.
func (m *Manager) BuildAndPublishProject(ctx context.Context, projectPath, databaseName string) error {
	if err := m.requireMade(); err != nil {
		return err
	}
	if strings.TrimSpace(projectPath) == "" {
		return blankArgument("project path")
	}
	if strings.TrimSpace(databaseName) == "" {
		return blankArgument("database name")
	}

	cs := instanceConnectionString(m.name)
	profilePath, err := m.CreatePublishProfile(databaseName, cs)
	if err != nil {
		return err
	}

	req := msbuild.Request{
		ProjectPath: projectPath,
		Targets:     []string{targetBuild, targetPublish},
		Properties: map[string]string{
			propTargetConnectionString: cs,
			propOutDir:                 m.cfg.BaseDir,
			propSqlPublishProfilePath:  profilePath,
		},
		LogFile: m.BuildLogPath(databaseName),
	}

	log := Logger().With("instance", m.name, "database", databaseName)
	log.Info("building and publishing project", "project", projectPath)

	ok, err := m.acc.Builder.Build(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: build %s: %w", ErrToolFailed, projectPath, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s (see %s)", sentinel.Of(ErrToolFailed, ErrBuildFailed), projectPath, req.LogFile)
	}
	log.Info("project published")
	return nil
}

package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-wizard/internal/types"
)

// Draft section names accepted by ReplaceSection.
const (
	SectionPersonalInfo   = "personal_info"
	SectionSummary        = "summary"
	SectionSkills         = "skills"
	SectionExperiences    = "experiences"
	SectionEducations     = "educations"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionLanguages      = "languages"
	SectionCustomSections = "custom_sections"
)

// CreateResume materializes a draft as a new committed resume. The parent
// row and all seven child collections are written in one transaction; on any
// failure nothing is visible.
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, templateID string, draft types.ResumeDraft) (uuid.UUID, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	pi := draft.PersonalInfo
	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO resumes (user_id, template_id, first_name, middle_name, last_name,
		                      email, phone, location, linkedin_url, github_url, portfolio_url, summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		userID, templateID, pi.FirstName, pi.MiddleName, pi.LastName,
		pi.Email, pi.Phone, pi.Location, pi.LinkedInURL, pi.GitHubURL, pi.PortfolioURL, draft.Summary,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}

	if err := insertChildren(ctx, tx, id, draft); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// UpdateResume replaces every section of an existing resume with the draft,
// in one transaction. Used when committing an edit session.
func (db *DB) UpdateResume(ctx context.Context, resumeID uuid.UUID, draft types.ResumeDraft) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	if err := updateParent(ctx, tx, resumeID, draft); err != nil {
		return err
	}
	for _, table := range childTables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE resume_id = $1", table), resumeID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertChildren(ctx, tx, resumeID, draft); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReplaceSection rewrites exactly one section of a committed resume from the
// draft. Unrelated sections are never touched, so their stored rows survive
// byte-for-byte.
func (db *DB) ReplaceSection(ctx context.Context, resumeID uuid.UUID, section string, draft types.ResumeDraft) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	switch section {
	case SectionPersonalInfo:
		pi := draft.PersonalInfo
		err = execTouching(ctx, tx, resumeID,
			`UPDATE resumes SET first_name = $2, middle_name = $3, last_name = $4, email = $5,
			        phone = $6, location = $7, linkedin_url = $8, github_url = $9,
			        portfolio_url = $10, updated_at = NOW()
			 WHERE id = $1`,
			pi.FirstName, pi.MiddleName, pi.LastName, pi.Email,
			pi.Phone, pi.Location, pi.LinkedInURL, pi.GitHubURL, pi.PortfolioURL)
	case SectionSummary:
		err = execTouching(ctx, tx, resumeID,
			`UPDATE resumes SET summary = $2, updated_at = NOW() WHERE id = $1`, draft.Summary)
	case SectionSkills:
		err = replaceChild(ctx, tx, resumeID, "resume_skills", func() error {
			return insertSkills(ctx, tx, resumeID, draft.Skills)
		})
	case SectionExperiences:
		err = replaceChild(ctx, tx, resumeID, "resume_experiences", func() error {
			return insertExperiences(ctx, tx, resumeID, draft.Experiences)
		})
	case SectionEducations:
		err = replaceChild(ctx, tx, resumeID, "resume_educations", func() error {
			return insertEducations(ctx, tx, resumeID, draft.Educations)
		})
	case SectionProjects:
		err = replaceChild(ctx, tx, resumeID, "resume_projects", func() error {
			return insertProjects(ctx, tx, resumeID, draft.Projects)
		})
	case SectionCertifications:
		err = replaceChild(ctx, tx, resumeID, "resume_certifications", func() error {
			return insertCertifications(ctx, tx, resumeID, draft.Certifications)
		})
	case SectionLanguages:
		err = replaceChild(ctx, tx, resumeID, "resume_languages", func() error {
			return insertLanguages(ctx, tx, resumeID, draft.Languages)
		})
	case SectionCustomSections:
		err = replaceChild(ctx, tx, resumeID, "resume_custom_sections", func() error {
			return insertCustomSections(ctx, tx, resumeID, draft.CustomSections)
		})
	default:
		return &UnknownSectionError{Section: section}
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetResume hydrates a committed resume back into the draft shape, preserving
// child ordering.
func (db *DB) GetResume(ctx context.Context, resumeID uuid.UUID) (*Resume, error) {
	res := Resume{ID: resumeID, Draft: types.NewResumeDraft()}
	pi := &res.Draft.PersonalInfo
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, template_id, first_name, middle_name, last_name, email, phone,
		        location, linkedin_url, github_url, portfolio_url, summary, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		resumeID,
	).Scan(&res.UserID, &res.TemplateID, &pi.FirstName, &pi.MiddleName, &pi.LastName, &pi.Email, &pi.Phone,
		&pi.Location, &pi.LinkedInURL, &pi.GitHubURL, &pi.PortfolioURL, &res.Draft.Summary, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &NotFoundError{ResumeID: resumeID}
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := db.loadChildren(ctx, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListResumes returns summaries of a user's committed resumes, newest first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]ResumeSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, template_id, first_name, last_name, created_at, updated_at
		 FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var summaries []ResumeSummary
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ID, &s.TemplateID, &s.FirstName, &s.LastName, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// DeleteResume removes a resume; child rows cascade.
func (db *DB) DeleteResume(ctx context.Context, resumeID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, resumeID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{ResumeID: resumeID}
	}
	return nil
}

// childTables lists every child collection, for full replacement on update.
var childTables = []string{
	"resume_skills",
	"resume_experiences",
	"resume_educations",
	"resume_projects",
	"resume_certifications",
	"resume_languages",
	"resume_custom_sections",
}

func updateParent(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, draft types.ResumeDraft) error {
	pi := draft.PersonalInfo
	return execTouching(ctx, tx, resumeID,
		`UPDATE resumes SET first_name = $2, middle_name = $3, last_name = $4, email = $5,
		        phone = $6, location = $7, linkedin_url = $8, github_url = $9,
		        portfolio_url = $10, summary = $11, updated_at = NOW()
		 WHERE id = $1`,
		pi.FirstName, pi.MiddleName, pi.LastName, pi.Email,
		pi.Phone, pi.Location, pi.LinkedInURL, pi.GitHubURL, pi.PortfolioURL, draft.Summary)
}

// execTouching runs an UPDATE keyed on the resume id and converts a zero
// row count into NotFoundError.
func execTouching(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, query string, args ...any) error {
	result, err := tx.Exec(ctx, query, append([]any{resumeID}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{ResumeID: resumeID}
	}
	return nil
}

func replaceChild(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, table string, insert func() error) error {
	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE resume_id = $1", table), resumeID); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return insert()
}

func insertChildren(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, draft types.ResumeDraft) error {
	if err := insertSkills(ctx, tx, resumeID, draft.Skills); err != nil {
		return err
	}
	if err := insertExperiences(ctx, tx, resumeID, draft.Experiences); err != nil {
		return err
	}
	if err := insertEducations(ctx, tx, resumeID, draft.Educations); err != nil {
		return err
	}
	if err := insertProjects(ctx, tx, resumeID, draft.Projects); err != nil {
		return err
	}
	if err := insertCertifications(ctx, tx, resumeID, draft.Certifications); err != nil {
		return err
	}
	if err := insertLanguages(ctx, tx, resumeID, draft.Languages); err != nil {
		return err
	}
	return insertCustomSections(ctx, tx, resumeID, draft.CustomSections)
}

func insertSkills(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, skills []types.Skill) error {
	for i, s := range skills {
		_, err := tx.Exec(ctx,
			`INSERT INTO resume_skills (resume_id, skill_name, skill_type, proficiency_level, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			resumeID, s.SkillName, s.SkillType, s.ProficiencyLevel, i)
		if err != nil {
			return fmt.Errorf("failed to insert skill: %w", err)
		}
	}
	return nil
}

func insertExperiences(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, experiences []types.Experience) error {
	for i, e := range experiences {
		var expID uuid.UUID
		err := tx.QueryRow(ctx,
			`INSERT INTO resume_experiences (resume_id, job_title, company_name, location,
			                                 start_date, end_date, is_current, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id`,
			resumeID, e.JobTitle, e.CompanyName, e.Location, e.StartDate, e.EndDate, e.IsCurrent, i,
		).Scan(&expID)
		if err != nil {
			return fmt.Errorf("failed to insert experience: %w", err)
		}
		for j, b := range e.BulletPoints {
			_, err := tx.Exec(ctx,
				`INSERT INTO experience_bullets (experience_id, description, position)
				 VALUES ($1, $2, $3)`,
				expID, b.Description, j)
			if err != nil {
				return fmt.Errorf("failed to insert experience bullet: %w", err)
			}
		}
	}
	return nil
}

func insertEducations(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, educations []types.Education) error {
	for i, e := range educations {
		_, err := tx.Exec(ctx,
			`INSERT INTO resume_educations (resume_id, institution_name, degree_type, field_of_study,
			                                location, start_date, end_date, gpa, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			resumeID, e.InstitutionName, e.DegreeType, e.FieldOfStudy, e.Location, e.StartDate, e.EndDate, e.GPA, i)
		if err != nil {
			return fmt.Errorf("failed to insert education: %w", err)
		}
	}
	return nil
}

func insertProjects(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, projects []types.Project) error {
	for i, p := range projects {
		var projID uuid.UUID
		err := tx.QueryRow(ctx,
			`INSERT INTO resume_projects (resume_id, project_name, description, technologies,
			                              project_url, start_date, end_date, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id`,
			resumeID, p.ProjectName, p.Description, p.Technologies, p.ProjectURL, p.StartDate, p.EndDate, i,
		).Scan(&projID)
		if err != nil {
			return fmt.Errorf("failed to insert project: %w", err)
		}
		for j, b := range p.BulletPoints {
			_, err := tx.Exec(ctx,
				`INSERT INTO project_bullets (project_id, description, position)
				 VALUES ($1, $2, $3)`,
				projID, b.Description, j)
			if err != nil {
				return fmt.Errorf("failed to insert project bullet: %w", err)
			}
		}
	}
	return nil
}

func insertCertifications(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, certifications []types.Certification) error {
	for i, c := range certifications {
		_, err := tx.Exec(ctx,
			`INSERT INTO resume_certifications (resume_id, certification_name, issuing_organization,
			                                    issue_date, expiration_date, credential_id, credential_url, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			resumeID, c.CertificationName, c.IssuingOrganization, c.IssueDate, c.ExpirationDate, c.CredentialID, c.CredentialURL, i)
		if err != nil {
			return fmt.Errorf("failed to insert certification: %w", err)
		}
	}
	return nil
}

func insertLanguages(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, languages []types.Language) error {
	for i, l := range languages {
		_, err := tx.Exec(ctx,
			`INSERT INTO resume_languages (resume_id, language_name, proficiency_level, position)
			 VALUES ($1, $2, $3, $4)`,
			resumeID, l.LanguageName, l.ProficiencyLevel, i)
		if err != nil {
			return fmt.Errorf("failed to insert language: %w", err)
		}
	}
	return nil
}

func insertCustomSections(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, sections []types.CustomSection) error {
	for i, s := range sections {
		_, err := tx.Exec(ctx,
			`INSERT INTO resume_custom_sections (resume_id, section_title, bullet_points, position)
			 VALUES ($1, $2, $3, $4)`,
			resumeID, s.SectionTitle, s.BulletPoints, i)
		if err != nil {
			return fmt.Errorf("failed to insert custom section: %w", err)
		}
	}
	return nil
}

func (db *DB) loadChildren(ctx context.Context, res *Resume) error {
	if err := db.loadSkills(ctx, res); err != nil {
		return err
	}
	if err := db.loadExperiences(ctx, res); err != nil {
		return err
	}
	if err := db.loadEducations(ctx, res); err != nil {
		return err
	}
	if err := db.loadProjects(ctx, res); err != nil {
		return err
	}
	if err := db.loadCertifications(ctx, res); err != nil {
		return err
	}
	if err := db.loadLanguages(ctx, res); err != nil {
		return err
	}
	return db.loadCustomSections(ctx, res)
}

func (db *DB) loadSkills(ctx context.Context, res *Resume) error {
	rows, err := db.pool.Query(ctx,
		`SELECT skill_name, skill_type, proficiency_level
		 FROM resume_skills WHERE resume_id = $1 ORDER BY position`,
		res.ID)
	if err != nil {
		return fmt.Errorf("failed to load skills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s types.Skill
		if err := rows.Scan(&s.SkillName, &s.SkillType, &s.ProficiencyLevel); err != nil {
			return fmt.Errorf("failed to scan skill: %w", err)
		}
		res.Draft.Skills = append(res.Draft.Skills, s)
	}
	return rows.Err()
}

func (db *DB) loadExperiences(ctx context.Context, res *Resume) error {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_title, company_name, location, start_date, end_date, is_current
		 FROM resume_experiences WHERE resume_id = $1 ORDER BY position`,
		res.ID)
	if err != nil {
		return fmt.Errorf("failed to load experiences: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		var e types.Experience
		if err := rows.Scan(&id, &e.JobTitle, &e.CompanyName, &e.Location, &e.StartDate, &e.EndDate, &e.IsCurrent); err != nil {
			return fmt.Errorf("failed to scan experience: %w", err)
		}
		e.BulletPoints = []types.BulletPoint{}
		res.Draft.Experiences = append(res.Draft.Experiences, e)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i, id := range ids {
		bullets, err := db.loadBullets(ctx, "experience_bullets", "experience_id", id)
		if err != nil {
			return err
		}
		res.Draft.Experiences[i].BulletPoints = bullets
	}
	return nil
}

func (db *DB) loadEducations(ctx context.Context, res *Resume) error {
	rows, err := db.pool.Query(ctx,
		`SELECT institution_name, degree_type, field_of_study, location, start_date, end_date, gpa
		 FROM resume_educations WHERE resume_id = $1 ORDER BY position`,
		res.ID)
	if err != nil {
		return fmt.Errorf("failed to load educations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e types.Education
		if err := rows.Scan(&e.InstitutionName, &e.DegreeType, &e.FieldOfStudy, &e.Location, &e.StartDate, &e.EndDate, &e.GPA); err != nil {
			return fmt.Errorf("failed to scan education: %w", err)
		}
		res.Draft.Educations = append(res.Draft.Educations, e)
	}
	return rows.Err()
}

func (db *DB) loadProjects(ctx context.Context, res *Resume) error {
	rows, err := db.pool.Query(ctx,
		`SELECT id, project_name, description, technologies, project_url, start_date, end_date
		 FROM resume_projects WHERE resume_id = $1 ORDER BY position`,
		res.ID)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		var p types.Project
		if err := rows.Scan(&id, &p.ProjectName, &p.Description, &p.Technologies, &p.ProjectURL, &p.StartDate, &p.EndDate); err != nil {
			return fmt.Errorf("failed to scan project: %w", err)
		}
		p.BulletPoints = []types.BulletPoint{}
		res.Draft.Projects = append(res.Draft.Projects, p)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i, id := range ids {
		bullets, err := db.loadBullets(ctx, "project_bullets", "project_id", id)
		if err != nil {
			return err
		}
		res.Draft.Projects[i].BulletPoints = bullets
	}
	return nil
}

func (db *DB) loadBullets(ctx context.Context, table, fk string, parentID uuid.UUID) ([]types.BulletPoint, error) {
	rows, err := db.pool.Query(ctx,
		fmt.Sprintf("SELECT description FROM %s WHERE %s = $1 ORDER BY position", table, fk),
		parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bullets from %s: %w", table, err)
	}
	defer rows.Close()

	bullets := []types.BulletPoint{}
	for rows.Next() {
		var b types.BulletPoint
		if err := rows.Scan(&b.Description); err != nil {
			return nil, fmt.Errorf("failed to scan bullet: %w", err)
		}
		bullets = append(bullets, b)
	}
	return bullets, rows.Err()
}

func (db *DB) loadCertifications(ctx context.Context, res *Resume) error {
	rows, err := db.pool.Query(ctx,
		`SELECT certification_name, issuing_organization, issue_date, expiration_date, credential_id, credential_url
		 FROM resume_certifications WHERE resume_id = $1 ORDER BY position`,
		res.ID)
	if err != nil {
		return fmt.Errorf("failed to load certifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c types.Certification
		if err := rows.Scan(&c.CertificationName, &c.IssuingOrganization, &c.IssueDate, &c.ExpirationDate, &c.CredentialID, &c.CredentialURL); err != nil {
			return fmt.Errorf("failed to scan certification: %w", err)
		}
		res.Draft.Certifications = append(res.Draft.Certifications, c)
	}
	return rows.Err()
}

func (db *DB) loadLanguages(ctx context.Context, res *Resume) error {
	rows, err := db.pool.Query(ctx,
		`SELECT language_name, proficiency_level
		 FROM resume_languages WHERE resume_id = $1 ORDER BY position`,
		res.ID)
	if err != nil {
		return fmt.Errorf("failed to load languages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l types.Language
		if err := rows.Scan(&l.LanguageName, &l.ProficiencyLevel); err != nil {
			return fmt.Errorf("failed to scan language: %w", err)
		}
		res.Draft.Languages = append(res.Draft.Languages, l)
	}
	return rows.Err()
}

func (db *DB) loadCustomSections(ctx context.Context, res *Resume) error {
	rows, err := db.pool.Query(ctx,
		`SELECT section_title, bullet_points
		 FROM resume_custom_sections WHERE resume_id = $1 ORDER BY position`,
		res.ID)
	if err != nil {
		return fmt.Errorf("failed to load custom sections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s types.CustomSection
		if err := rows.Scan(&s.SectionTitle, &s.BulletPoints); err != nil {
			return fmt.Errorf("failed to scan custom section: %w", err)
		}
		res.Draft.CustomSections = append(res.Draft.CustomSections, s)
	}
	return rows.Err()
}

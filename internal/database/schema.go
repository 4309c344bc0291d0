package database

import (
	"context"
	"database/sql"
)

// schema contains the CREATE TABLE statements for every table the API reads
// or writes.  Statements are idempotent so Migrate can run on every startup.
// The scraping and image-generation workers write to the same tables; the
// queries/companies/employees/companies_maps_data rows are inserted by
// workers only.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            CHAR(36) PRIMARY KEY,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(32)  NOT NULL DEFAULT 'USER',
		is_active     BOOLEAN      NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
		user_id    CHAR(36)     NOT NULL,
		token_hash CHAR(64)     NOT NULL UNIQUE,
		expires_at TIMESTAMP    NOT NULL,
		revoked_at TIMESTAMP    NULL,
		created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_refresh_user (user_id),
		CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		project_id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
		name       VARCHAR(255) NOT NULL,
		is_active  BOOLEAN      NOT NULL DEFAULT TRUE,
		user_id    CHAR(36)     NOT NULL,
		created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_projects_user (user_id),
		CONSTRAINT fk_projects_user FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS queries (
		query_id       BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
		sector         VARCHAR(255) NULL,
		location       VARCHAR(255) NULL,
		type           VARCHAR(32)  NOT NULL,
		maps_results   INT          NULL,
		search_results INT          NULL,
		user_id        CHAR(36)     NOT NULL,
		project_id     BIGINT UNSIGNED NULL,
		is_active      BOOLEAN      NOT NULL DEFAULT TRUE,
		started_at     TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		finished_at    TIMESTAMP    NULL,
		KEY idx_queries_user (user_id),
		KEY idx_queries_project (project_id),
		CONSTRAINT fk_queries_project FOREIGN KEY (project_id) REFERENCES projects(project_id)
	)`,
	`CREATE TABLE IF NOT EXISTS companies (
		company_id    BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
		name          VARCHAR(255) NOT NULL,
		website       VARCHAR(512) NOT NULL DEFAULT '',
		phone         VARCHAR(64)  NOT NULL DEFAULT '',
		full_address  VARCHAR(512) NOT NULL DEFAULT '',
		borough       VARCHAR(128) NOT NULL DEFAULT '',
		line1         VARCHAR(255) NOT NULL DEFAULT '',
		city          VARCHAR(128) NOT NULL DEFAULT '',
		zip           VARCHAR(32)  NOT NULL DEFAULT '',
		region        VARCHAR(128) NOT NULL DEFAULT '',
		country_code  VARCHAR(8)   NOT NULL DEFAULT '',
		contact_email VARCHAR(255) NOT NULL DEFAULT '',
		other_emails  TEXT         NULL,
		linkedin      VARCHAR(512) NOT NULL DEFAULT '',
		twitter       VARCHAR(512) NOT NULL DEFAULT '',
		facebook      VARCHAR(512) NOT NULL DEFAULT '',
		instagram     VARCHAR(512) NOT NULL DEFAULT '',
		youtube       VARCHAR(512) NOT NULL DEFAULT '',
		query_id      BIGINT UNSIGNED NOT NULL,
		KEY idx_companies_query (query_id),
		CONSTRAINT fk_companies_query FOREIGN KEY (query_id) REFERENCES queries(query_id)
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		employee_id       BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
		full_name         VARCHAR(255) NOT NULL,
		first_name        VARCHAR(128) NOT NULL DEFAULT '',
		last_name         VARCHAR(128) NOT NULL DEFAULT '',
		position          VARCHAR(255) NOT NULL DEFAULT '',
		extracted_company VARCHAR(255) NOT NULL DEFAULT '',
		email             VARCHAR(255) NOT NULL DEFAULT '',
		rank_score        INT          NOT NULL DEFAULT 0,
		search_title      VARCHAR(512) NOT NULL DEFAULT '',
		pre_snippet       TEXT         NULL,
		linkedin_url      VARCHAR(512) NOT NULL DEFAULT '',
		company_id        BIGINT UNSIGNED NOT NULL,
		KEY idx_employees_company (company_id),
		CONSTRAINT fk_employees_company FOREIGN KEY (company_id) REFERENCES companies(company_id)
	)`,
	`CREATE TABLE IF NOT EXISTS companies_maps_data (
		maps_data_id    BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
		search_position INT          NOT NULL DEFAULT 0,
		lat             DOUBLE       NOT NULL DEFAULT 0,
		lng             DOUBLE       NOT NULL DEFAULT 0,
		rating          INT          NOT NULL DEFAULT 0,
		reviews         INT          NOT NULL DEFAULT 0,
		type            VARCHAR(128) NOT NULL DEFAULT '',
		thumbnail       VARCHAR(1024) NOT NULL DEFAULT '',
		company_id      BIGINT UNSIGNED NOT NULL UNIQUE,
		CONSTRAINT fk_maps_company FOREIGN KEY (company_id) REFERENCES companies(company_id)
	)`,
	`CREATE TABLE IF NOT EXISTS image_templates (
		image_template_id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
		top               INT          NOT NULL,
		` + "`left`" + `            INT          NOT NULL,
		font_weight       INT          NOT NULL,
		font_style        VARCHAR(32)  NOT NULL,
		font_size         INT          NOT NULL,
		font_family       VARCHAR(128) NOT NULL,
		font_underline    BOOLEAN      NOT NULL DEFAULT FALSE,
		font_color        VARCHAR(16)  NOT NULL DEFAULT '#000000',
		rotation          INT          NOT NULL DEFAULT 0,
		box_width         INT          NOT NULL,
		box_height        INT          NOT NULL DEFAULT 200,
		content           TEXT         NOT NULL,
		base_image        LONGBLOB     NULL,
		base_image_format VARCHAR(8)   NULL,
		user_id           CHAR(36)     NOT NULL,
		created_at        TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at        TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_templates_user (user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS images (
		image_id     BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
		image        LONGBLOB     NOT NULL,
		thumbnail    LONGBLOB     NOT NULL,
		image_format VARCHAR(8)   NOT NULL,
		preview      BOOLEAN      NOT NULL DEFAULT FALSE,
		parameters   JSON         NULL,
		template_id  BIGINT UNSIGNED NULL,
		user_id      CHAR(36)     NOT NULL,
		created_at   TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_images_template (template_id),
		KEY idx_images_user (user_id)
	)`,
}

// Migrate applies the schema statements in order.  Every statement uses
// CREATE TABLE IF NOT EXISTS so re-running is safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

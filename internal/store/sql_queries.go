package store

// Column lists are shared between INSERT ... RETURNING and SELECT queries so
// every scan sees the same order. Nullable text columns are coalesced to
// empty strings; nullable references and timestamps scan into pointers.
const (
	userColumns = `id, username, email, password_hash, COALESCE(full_name, ''), role,
    is_active, is_verified, approved_by, approved_at, created_at, updated_at`

	createUser = `INSERT INTO users (username, email, password_hash, full_name, role, is_active, is_verified, approved_by, approved_at)
    VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)
    RETURNING ` + userColumns + `;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = $1;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	listUsers = `SELECT ` + userColumns + `
    FROM users
    ORDER BY created_at DESC;`

	listPendingUsers = `SELECT ` + userColumns + `
    FROM users
    WHERE is_verified = false
    ORDER BY created_at DESC;`

	approveUser = `UPDATE users
    SET is_active = true, is_verified = true, approved_by = $1, approved_at = now(), updated_at = now()
    WHERE id = $2 AND is_verified = false
    RETURNING ` + userColumns + `;`

	deletePendingUser = `DELETE FROM users
    WHERE id = $1 AND is_verified = false;`

	setUserActive = `UPDATE users
    SET is_active = $2, updated_at = now()
    WHERE id = $1 AND is_active <> $2
    RETURNING ` + userColumns + `;`
)

const (
	clientColumns = `c.id, c.name, COALESCE(c.company_name, ''), COALESCE(c.description, ''),
    COALESCE(c.email, ''), COALESCE(c.phone, ''), COALESCE(c.address, ''),
    c.is_active, c.created_by, c.created_at, c.updated_at, COALESCE(u.username, '')`

	createClient = `INSERT INTO clients (name, company_name, description, email, phone, address, created_by)
    VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)
    RETURNING id;`

	getClientByID = `SELECT ` + clientColumns + `
    FROM clients c
    LEFT JOIN users u ON c.created_by = u.id
    WHERE c.id = $1 AND c.is_active = true;`

	listClients = `SELECT ` + clientColumns + `
    FROM clients c
    LEFT JOIN users u ON c.created_by = u.id
    WHERE c.is_active = true
    ORDER BY c.created_at DESC
    LIMIT $1 OFFSET $2;`

	countClients = `SELECT COUNT(*) FROM clients WHERE is_active = true;`

	softDeleteClient = `UPDATE clients
    SET is_active = false, updated_at = now()
    WHERE id = $1 AND is_active = true;`

	clientIsActive = `SELECT 1 FROM clients WHERE id = $1 AND is_active = true;`
)

const (
	resourceColumns = `r.id, r.client_id, r.name, r.resource_type, COALESCE(r.description, ''),
    COALESCE(r.hostname, ''), COALESCE(r.ip_address, ''), r.port, COALESCE(r.url, ''), COALESCE(r.notes, ''),
    r.is_active, r.created_by, r.created_at, r.updated_at, COALESCE(c.name, ''), COALESCE(u.username, '')`

	createResource = `INSERT INTO resources (client_id, name, resource_type, description, hostname, ip_address, port, url, notes, created_by)
    VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''), NULLIF($9, ''), $10)
    RETURNING id;`

	getResourceByID = `SELECT ` + resourceColumns + `
    FROM resources r
    LEFT JOIN clients c ON r.client_id = c.id
    LEFT JOIN users u ON r.created_by = u.id
    WHERE r.id = $1 AND r.is_active = true;`

	softDeleteResource = `UPDATE resources
    SET is_active = false, updated_at = now()
    WHERE id = $1 AND is_active = true;`

	resourceIsActive = `SELECT 1 FROM resources WHERE id = $1 AND is_active = true;`
)

const (
	createCredential = `INSERT INTO credentials (resource_id, credential_type, username, encrypted_password, encryption_iv, ssh_key, notes, expires_at, last_rotated_at, created_by)
    VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10)
    RETURNING id;`

	getCredentialByID = `SELECT cr.id, cr.resource_id, cr.credential_type, COALESCE(cr.username, ''),
    cr.encrypted_password, cr.encryption_iv, COALESCE(cr.ssh_key, ''), COALESCE(cr.notes, ''),
    cr.expires_at, cr.last_rotated_at, cr.is_active, cr.created_by, cr.created_at, cr.updated_at,
    COALESCE(r.name, ''), COALESCE(r.client_id, 0), COALESCE(c.name, ''), COALESCE(u.username, '')
    FROM credentials cr
    LEFT JOIN resources r ON cr.resource_id = r.id
    LEFT JOIN clients c ON r.client_id = c.id
    LEFT JOIN users u ON cr.created_by = u.id
    WHERE cr.id = $1 AND cr.is_active = true;`

	softDeleteCredential = `UPDATE credentials
    SET is_active = false, updated_at = now()
    WHERE id = $1 AND is_active = true;`
)

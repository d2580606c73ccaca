package store

// Every child table is keyed by its meeting (session, meeting, kind) plus
// the record's local id, so re-parsing a meeting replaces its rows.
const schema = `
CREATE TABLE IF NOT EXISTS meetings (
	session_id  INTEGER NOT NULL,
	meeting_id  INTEGER NOT NULL,
	kind        TEXT    NOT NULL,
	date        TEXT    NOT NULL,
	time_of_day TEXT    NOT NULL,
	start_time  TEXT    NOT NULL,
	end_time    TEXT    NOT NULL,
	committee   TEXT    NOT NULL DEFAULT '',
	chair       TEXT    NOT NULL DEFAULT '',
	PRIMARY KEY (session_id, meeting_id, kind)
);

CREATE TABLE IF NOT EXISTS questions (
	session_id  INTEGER NOT NULL,
	meeting_id  INTEGER NOT NULL,
	kind        TEXT    NOT NULL,
	question_id INTEGER NOT NULL,
	topic_nl    TEXT    NOT NULL,
	topic_fr    TEXT    NOT NULL,
	questioners TEXT    NOT NULL,
	respondents TEXT    NOT NULL,
	dossier_ids TEXT    NOT NULL,
	discussion  TEXT    NOT NULL,
	PRIMARY KEY (session_id, meeting_id, kind, question_id),
	FOREIGN KEY (session_id, meeting_id, kind)
		REFERENCES meetings (session_id, meeting_id, kind) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS propositions (
	session_id     INTEGER NOT NULL,
	meeting_id     INTEGER NOT NULL,
	kind           TEXT    NOT NULL,
	proposition_id INTEGER NOT NULL,
	title_nl       TEXT    NOT NULL,
	title_fr       TEXT    NOT NULL,
	dossier_id     TEXT    NOT NULL,
	document_id    TEXT    NOT NULL,
	PRIMARY KEY (session_id, meeting_id, kind, proposition_id),
	FOREIGN KEY (session_id, meeting_id, kind)
		REFERENCES meetings (session_id, meeting_id, kind) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS votes (
	session_id     INTEGER NOT NULL,
	meeting_id     INTEGER NOT NULL,
	kind           TEXT    NOT NULL,
	vote_id        INTEGER NOT NULL,
	vote_index     TEXT    NOT NULL,
	title_nl       TEXT    NOT NULL,
	title_fr       TEXT    NOT NULL,
	dossier_id     TEXT    NOT NULL,
	document_id    TEXT    NOT NULL,
	motion_id      TEXT    NOT NULL,
	yes            INTEGER NOT NULL,
	no             INTEGER NOT NULL,
	abstain        INTEGER NOT NULL,
	yes_voters     TEXT    NOT NULL,
	no_voters      TEXT    NOT NULL,
	abstain_voters TEXT    NOT NULL,
	PRIMARY KEY (session_id, meeting_id, kind, vote_id),
	FOREIGN KEY (session_id, meeting_id, kind)
		REFERENCES meetings (session_id, meeting_id, kind) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS votes_dossier ON votes (session_id, dossier_id);

CREATE TABLE IF NOT EXISTS dossiers (
	session_id      INTEGER NOT NULL,
	dossier_id      TEXT    NOT NULL,
	title           TEXT    NOT NULL,
	submission_date TEXT    NOT NULL,
	vote_date       TEXT    NOT NULL,
	end_date        TEXT    NOT NULL,
	authors         TEXT    NOT NULL,
	document_type   TEXT    NOT NULL,
	status          TEXT    NOT NULL,
	PRIMARY KEY (session_id, dossier_id)
);

CREATE TABLE IF NOT EXISTS subdocuments (
	session_id     INTEGER NOT NULL,
	dossier_id     TEXT    NOT NULL,
	subdocument_id TEXT    NOT NULL,
	date           TEXT    NOT NULL,
	document_type  TEXT    NOT NULL,
	authors        TEXT    NOT NULL,
	PRIMARY KEY (session_id, dossier_id, subdocument_id),
	FOREIGN KEY (session_id, dossier_id)
		REFERENCES dossiers (session_id, dossier_id) ON DELETE CASCADE
);
`

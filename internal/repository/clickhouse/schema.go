package clickhouse

import (
	"context"
	"fmt"
)

// Table DDL. Raw events and the two first-seen indexes are
// ReplacingMergeTree so that re-ingesting a key overwrites it; all derived
// tables are plain MergeTree, partitioned by month, and rewritten per date
// range by the pipeline.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS raw_events (
		event_id String,
		timestamp DateTime64(3, 'UTC'),
		event_type LowCardinality(String),
		user_id String,
		session_id String,
		session_date Date,
		query String,
		result_count_raw String,
		clicked_position String,
		clicked_tab String,
		clicked_title String,
		clicked_url String,
		applied_filter String,
		query_language String,
		device LowCardinality(String),
		department LowCardinality(String),
		location LowCardinality(String),
		seq UInt64,
		ingested_at DateTime64(3) DEFAULT now64(3)
	) ENGINE = ReplacingMergeTree(ingested_at)
	PRIMARY KEY (event_id)
	ORDER BY (event_id)
	PARTITION BY toYYYYMM(session_date)
	SETTINGS index_granularity = 8192`,

	`CREATE TABLE IF NOT EXISTS enriched_events (
		session_date Date,
		session_key String,
		event_order Int32,
		timestamp DateTime64(3, 'UTC'),
		local_time DateTime64(3),
		event_type LowCardinality(String),
		user_id String,
		session_id String,
		prev_event_type Nullable(String),
		prev_timestamp Nullable(DateTime64(3, 'UTC')),
		ms_since_prev Nullable(Int64),
		gap_bucket LowCardinality(String),
		search_term String,
		term_length Int32,
		term_word_count Int32,
		last_search_at Nullable(DateTime64(3, 'UTC')),
		active_term String,
		event_hour Int8,
		event_weekday Int8,
		result_count Nullable(Int32),
		is_zero_result Nullable(Bool),
		click_category LowCardinality(String),
		is_content_discovery Bool,
		is_first_search_of_day Nullable(Bool)
	) ENGINE = MergeTree
	ORDER BY (session_key, event_order)
	PARTITION BY toYYYYMM(session_date)`,

	`CREATE TABLE IF NOT EXISTS journeys (
		session_date Date,
		session_key String,
		user_id String,
		session_id String,
		session_start DateTime64(3, 'UTC'),
		session_end DateTime64(3, 'UTC'),
		duration_ms Int64,
		total_events Int32,
		search_count Int32,
		result_count Int32,
		click_count Int32,
		zero_result_count Int32,
		unique_terms Int32,
		result_clicks Int32,
		view_more_clicks Int32,
		trending_clicks Int32,
		tab_clicks Int32,
		pagination_all_clicks Int32,
		pagination_news_clicks Int32,
		pagination_goto_clicks Int32,
		filter_clicks Int32,
		avg_result_total Nullable(Float64),
		max_result_total Nullable(Int32),
		ms_search_to_result Nullable(Int64),
		ms_result_to_click Nullable(Int64),
		avg_ms_between_events Nullable(Float64),
		avg_term_length Nullable(Float64),
		avg_term_words Nullable(Float64),
		first_event_hour Int8,
		last_event_hour Int8,
		includes_first_search_of_day Bool,
		outcome LowCardinality(String),
		had_reformulation Bool,
		recovered_from_zero Bool,
		multi_tab_browsing Bool,
		is_first_session Bool,
		complexity LowCardinality(String),
		search_to_result_bucket LowCardinality(String),
		result_to_click_bucket LowCardinality(String),
		duration_bucket LowCardinality(String)
	) ENGINE = MergeTree
	ORDER BY (session_date, session_key)
	PARTITION BY toYYYYMM(session_date)`,

	`CREATE TABLE IF NOT EXISTS daily_aggregates (
		session_date Date,
		total_events Int64,
		unique_sessions Int64,
		unique_users Int64,
		unique_terms Int64,
		search_count Int64,
		result_count Int64,
		click_count Int64,
		zero_result_count Int64,
		first_searches_of_day Int64,
		result_clicks Int64,
		view_more_clicks Int64,
		trending_clicks Int64,
		tab_clicks Int64,
		pagination_all_clicks Int64,
		pagination_news_clicks Int64,
		pagination_goto_clicks Int64,
		filter_clicks Int64,
		sum_term_length Int64,
		sum_term_words Int64,
		term_samples Int64,
		new_users Int64,
		returning_users Int64
	) ENGINE = MergeTree
	ORDER BY session_date`,

	`CREATE TABLE IF NOT EXISTS term_aggregates (
		session_date Date,
		term String,
		search_count Int64,
		result_count Int64,
		zero_result_count Int64,
		discovery_clicks Int64,
		other_clicks Int64,
		unique_sessions Int64,
		sum_result_total Int64,
		result_samples Int64,
		first_seen_date String,
		is_new_term Bool
	) ENGINE = MergeTree
	ORDER BY (session_date, term)
	PARTITION BY toYYYYMM(session_date)`,

	`CREATE TABLE IF NOT EXISTS daily_journey_aggregates (
		session_date Date,
		session_count Int64,
		success_count Int64,
		engaged_count Int64,
		no_results_count Int64,
		abandoned_count Int64,
		unknown_count Int64,
		reformulation_count Int64,
		recovered_count Int64,
		multi_tab_count Int64,
		first_session_count Int64,
		total_events Int64,
		total_searches Int64,
		total_results Int64,
		total_clicks Int64,
		total_zero_result Int64,
		sum_duration_ms Int64,
		sum_ms_search_to_result Int64,
		search_to_result_samples Int64,
		sum_ms_result_to_click Int64,
		result_to_click_samples Int64,
		updated_at DateTime64(3) DEFAULT now64(3)
	) ENGINE = ReplacingMergeTree(updated_at)
	ORDER BY session_date`,

	`CREATE TABLE IF NOT EXISTS user_first_seen (
		user_id String,
		first_date Date,
		first_start DateTime64(3, 'UTC'),
		updated_at DateTime64(3) DEFAULT now64(3)
	) ENGINE = ReplacingMergeTree(updated_at)
	ORDER BY user_id`,

	`CREATE TABLE IF NOT EXISTS term_first_seen (
		term String,
		first_date Date,
		updated_at DateTime64(3) DEFAULT now64(3)
	) ENGINE = ReplacingMergeTree(updated_at)
	ORDER BY term`,
}

// InitSchema creates every table the pipeline writes.
func (r *Repository) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if err := r.client.Conn().Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	r.log.Info("ClickHouse schema initialized successfully")
	return nil
}

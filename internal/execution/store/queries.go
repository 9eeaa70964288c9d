/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package store

import "github.com/linkedpipes/executor/internal/system/database/model"

var (
	// QueryUpsertExecutionOverview is the query to create or update the overview row of an execution.
	QueryUpsertExecutionOverview = model.DBQuery{
		ID: "EXQ-JOURNAL-01",
		Query: "INSERT INTO EXECUTION_OVERVIEW (EXECUTION_ID, EXECUTION_IRI, PIPELINE_IRI, STATUS, " +
			"START_TIME, END_TIME, LAST_CHANGE, PROGRESS_TOTAL, PROGRESS_CURRENT, DIRECTORY_SIZE, DOCUMENT) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) " +
			"ON CONFLICT (EXECUTION_ID) DO UPDATE SET PIPELINE_IRI = excluded.PIPELINE_IRI, " +
			"STATUS = excluded.STATUS, START_TIME = excluded.START_TIME, END_TIME = excluded.END_TIME, " +
			"LAST_CHANGE = excluded.LAST_CHANGE, PROGRESS_TOTAL = excluded.PROGRESS_TOTAL, " +
			"PROGRESS_CURRENT = excluded.PROGRESS_CURRENT, DIRECTORY_SIZE = excluded.DIRECTORY_SIZE, " +
			"DOCUMENT = excluded.DOCUMENT",
	}
	// QueryInsertExecutionEvent is the query to append an event of an execution.
	QueryInsertExecutionEvent = model.DBQuery{
		ID: "EXQ-JOURNAL-02",
		Query: "INSERT INTO EXECUTION_EVENT (EXECUTION_ID, SEQUENCE, EVENT_TYPE, COMPONENT_IRI, " +
			"CREATED_AT, PAYLOAD) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (EXECUTION_ID, SEQUENCE) DO NOTHING",
	}
	// QueryGetExecutionOverview is the query to read the overview row of an execution.
	QueryGetExecutionOverview = model.DBQuery{
		ID: "EXQ-JOURNAL-03",
		Query: "SELECT EXECUTION_ID, STATUS, LAST_CHANGE, PROGRESS_TOTAL, PROGRESS_CURRENT, DOCUMENT " +
			"FROM EXECUTION_OVERVIEW WHERE EXECUTION_ID = $1",
	}
	// QueryDeleteExecutionEvents is the query to remove the stored events of an execution.
	QueryDeleteExecutionEvents = model.DBQuery{
		ID:    "EXQ-JOURNAL-04",
		Query: "DELETE FROM EXECUTION_EVENT WHERE EXECUTION_ID = $1",
	}
)

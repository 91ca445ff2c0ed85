package importer

const samplePayload = `{
  "projects": [
    {
      "id": "p-web",
      "name": "Website Relaunch",
      "key": "web",
      "startDate": "2024-01-01",
      "endDate": "2024-03-31",
      "sprints": [
        {
          "id": "s-1",
          "name": "Sprint 1",
          "startDate": "2024-01-01",
          "endDate": "2024-01-14",
          "status": "started",
          "tasks": [
            {
              "id": "t-1",
              "key": "WEB-1",
              "name": "Fix login bug",
              "startDate": "2024-01-02",
              "dueDate": "2024-01-05T00:00:00Z",
              "assigneeId": {"id": "u-1", "fullName": "Ada Lovelace"},
              "statusId": {"name": "Code Review", "category": "In Progress"}
            },
            {
              "key": "WEB-2",
              "name": "Design header",
              "assigneeId": "Grace Hopper",
              "statusId": {"name": "Todo", "category": "To Do"}
            }
          ]
        }
      ]
    }
  ],
  "backlogTasks": [
    {
      "id": "t-9",
      "key": "WEB-9",
      "name": "Triage reports",
      "projectId": "p-web",
      "assigneeId": "grace hopper",
      "statusId": {"name": "Blocked", "category": "Waiting"}
    }
  ]
}`

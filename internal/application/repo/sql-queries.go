package repo

const healthCheckQuery = `SELECT 1`

// Command docket is the batch CLI for the practice document organizer:
// inventory scanning, duplicate and near-duplicate reporting, classification
// planning, and verified migration into the practice folder tree.
package main

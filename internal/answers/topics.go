package answers

// Canned topic answers. These blocks are data, not logic: they mirror the
// policy summaries HR signed off on, formatted for the chat UI's markdown
// renderer. Amounts are indicative ranges for India-based employees.

const medicalAnswer = `Our company provides a comprehensive medical benefits package:

**Health Insurance Coverage:**
• **Medical Plans**: 3-4 plan options (Group Health, Individual Plans, Top-up)
• **Premium Coverage**: Company pays 80-90% of premium costs
• **Annual Deductible**: ₹25,000-₹1,50,000 (varies by plan)
• **Out-of-Pocket Maximum**: ₹1,00,000-₹3,00,000 annually

**Prescription Coverage:**
• **Generic Drugs**: ₹200-₹500 copay
• **Brand Name**: ₹1,000-₹2,500 copay
• **Specialty Medications**: 10-20% coinsurance
• **Mail Order**: 90-day supply discounts

**Additional Benefits:**
• **Dental Insurance**: ₹75,000-₹1,25,000 annual maximum
• **Vision Coverage**: ₹10,000-₹20,000 annual allowance
• **Mental Health**: Full parity coverage
• **Telehealth**: ₹0-₹1,000 virtual visit copay

**Financial Benefits:**
• **Health Savings Account**: Up to ₹1,50,000 individual/₹3,00,000 family
• **Company Contribution**: ₹25,000-₹75,000 annually
• **Flexible Spending Account**: Up to ₹1,25,000 annually

**Wellness Programs:**
• **Annual Physical**: 100% covered
• **Preventive Care**: ₹0 copay
• **Fitness Reimbursement**: Up to ₹25,000 annually
• **Wellness Incentives**: ₹10,000-₹30,000 in rewards

For your specific plan details, premium costs, and enrollment options, access the employee benefits portal or contact HR.`

const leaveApplyAnswer = `To apply for leave:

**Application Process:**
• Log into your employee portal or HR system
• Navigate to "Time Off" or "Leave Requests" section
• Select leave type (vacation, sick, personal, etc.)
• Choose your dates and duration
• Add any required documentation
• Submit for manager approval

**Leave Types & Entitlements (As per Indian Labor Law):**
• **Earned Leave (Privilege Leave)**: 21 days annually
  - Accrues at 1.75 days per month
  - Can carry forward up to 30 days
• **Casual Leave**: 12 days annually
  - Cannot be carried forward
  - Max 3 consecutive days without approval
• **Sick Leave**: 12 days annually
  - Accumulative up to 90 days
  - Medical certificate required for 3+ days
• **Maternity Leave**: 26 weeks (as per Maternity Benefit Act)
• **Paternity Leave**: 15 days within 6 months of child birth
• **Bereavement Leave**: 5 days for immediate family

**Processing Time**: Most requests approved within 24-48 hours
**Need Help?** Contact your manager or HR for assistance`

const leaveAnswer = `We offer comprehensive time-off benefits as per Indian standards:

**Annual Leave Entitlements (Indian Standards):**
• **Earned Leave (EL)**: 21 days annually
  - Accrues monthly: 1.75 days per month
  - Encashment allowed at year-end
  - Maximum accumulation: 240 days
• **Casual Leave (CL)**: 12 days annually
  - Cannot be carried forward or encashed
  - Advance application preferred
• **Sick Leave (SL)**: 12 days annually
  - Accumulative up to 90 days
  - Medical certificate for 3+ consecutive days

**Statutory Leave Options:**
• **Maternity Leave**: 26 weeks (paid as per Maternity Benefit Act)
• **Paternity Leave**: 15 days within 6 months of child birth
• **Adoption Leave**: 12 weeks for children under 1 year
• **Bereavement Leave**: 5 days for immediate family
• **Emergency Leave**: 2-3 days for urgent situations

**Public Holidays**: 12 national + 3 optional festivals
**Leave Encashment**: EL can be encashed annually or at separation
**Sabbatical Leave**: Extended unpaid leave options available

Your specific entitlement depends on your role, location, and length of service. Check your employee portal for exact calculations.`

const allowanceAnswer = `We provide comprehensive allowances and expense reimbursements:

**Travel Allowances:**
• **Domestic Travel**: 100% reimbursement for approved business travel
• **Meal Per Diem**: ₹2,000-₹3,500 per day (varies by city)
• **Hotel Accommodation**: ₹6,000-₹15,000 per night (based on city tier)
• **Mileage Reimbursement**: ₹12-₹15 per km
• **Airport/Transportation**: 100% reimbursement with receipts

**Work-from-Home Allowances:**
• **Home Office Setup**: ₹25,000-₹75,000 one-time allowance
• **Internet Stipend**: ₹2,000-₹4,000 monthly
• **Phone/Communication**: ₹2,000-₹4,000 monthly
• **Ergonomic Equipment**: Up to ₹25,000 annually

**Professional Development:**
• **Training Budget**: ₹1,00,000-₹2,50,000 annually per employee
• **Conference Attendance**: ₹75,000-₹1,75,000 per event
• **Certification Reimbursement**: 100% for job-related certifications
• **Education Assistance**: Up to ₹2,50,000 annually for tuition

**Technology Allowances:**
• **Laptop/Equipment Refresh**: Every 3-4 years
• **Software Licenses**: 100% covered for business needs
• **Mobile Device**: ₹30,000-₹60,000 allowance or company-provided

Submit expenses through the designated expense management system within 60 days.`

const relocationAnswer = `We provide comprehensive relocation assistance with specific budget allocations:

**Relocation Budget Tiers (India):**
• **Entry Level (L1-L3)**: ₹2,50,000-₹7,50,000
• **Mid-Level (L4-L6)**: ₹7,50,000-₹17,50,000
• **Senior Level (L7-L9)**: ₹17,50,000-₹32,50,000
• **Executive Level (L10+)**: ₹32,50,000-₹75,00,000+
• **International Moves**: ₹12,50,000-₹1,00,00,000+

**Covered Expenses:**
• **Moving Services**: Professional packers & movers, transportation
• **Temporary Housing**: Up to 60-90 days coverage (₹50,000-₹1,50,000/month)
• **House Hunting Trips**: 1-2 trips with spouse (flights + accommodation)
• **Brokerage & Registration**: Real estate fees, stamp duty assistance
• **Storage**: Up to 6 months if needed (₹5,000-₹15,000/month)
• **Vehicle Transportation**: For intercity moves

**Additional Benefits:**
• **Security Deposit**: Advance for new accommodation
• **Lease Breaking**: Penalties covered for current lease
• **Spouse Job Search**: Career transition assistance (₹25,000-₹50,000)
• **Tax Implications**: Professional tax consultation covered
• **School Admission**: Assistance finding schools + admission fees

**International Relocation Extras:**
• **Visa/Immigration**: All legal fees covered (₹50,000-₹2,00,000)
• **Cultural Training**: For employee and family
• **Language Lessons**: Up to ₹1,00,000 for language training
• **Cost of Living Adjustment**: Salary adjustments for expensive cities

Your specific budget depends on your level, role, distance, and destination. Contact the Global Mobility team for a detailed breakdown.`
